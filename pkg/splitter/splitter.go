package splitter

import (
	"strings"
	"unicode/utf8"
)

// separators in preference order: paragraph, line, sentence, word, rune.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts long text into overlapping chunks, preferring natural
// boundaries over mid-word cuts. The same splitter runs over web pages
// and ingested documents so chunk geometry stays uniform.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 400
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

func (s *Splitter) Split(text string) []string {
	return s.split(text, separators)
}

func (s *Splitter) split(text string, seps []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= s.ChunkSize {
		return []string{text}
	}

	// Pick the first separator that actually occurs in the text
	sep := ""
	rest := []string{}
	for i, sp := range seps {
		if sp == "" {
			break
		}
		if strings.Contains(text, sp) {
			sep = sp
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return s.hardCut(text)
	}

	raw := strings.Split(text, sep)
	pieces := make([]string, 0, len(raw))
	for i, p := range raw {
		if i < len(raw)-1 {
			p += sep
		}
		if p == "" {
			continue
		}
		if utf8.RuneCountInString(p) > s.ChunkSize {
			// A piece that still exceeds the budget gets split with
			// the next separator down the preference order.
			pieces = append(pieces, s.split(p, rest)...)
		} else {
			pieces = append(pieces, p)
		}
	}

	return s.merge(pieces)
}

// merge joins pieces greedily up to ChunkSize, keeping a tail of the
// previous chunk as overlap so context survives the boundary.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var cur []string
	curLen := 0

	for _, p := range pieces {
		pl := utf8.RuneCountInString(p)
		if curLen+pl > s.ChunkSize && curLen > 0 {
			joined := strings.Join(cur, "")
			if strings.TrimSpace(joined) != "" {
				chunks = append(chunks, joined)
			}
			for curLen > s.Overlap && len(cur) > 0 {
				curLen -= utf8.RuneCountInString(cur[0])
				cur = cur[1:]
			}
		}
		cur = append(cur, p)
		curLen += pl
	}

	if joined := strings.Join(cur, ""); strings.TrimSpace(joined) != "" {
		chunks = append(chunks, joined)
	}
	return chunks
}

// hardCut is the last resort when no separator fits: strict rune
// slicing with a fixed stride.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	totalLen := len(runes)

	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + s.ChunkSize
		if end > totalLen {
			end = totalLen
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == totalLen {
			break
		}
	}
	return chunks
}
