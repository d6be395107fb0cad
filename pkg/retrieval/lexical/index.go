package lexical

import (
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"

	"clinic-assistant-be/internal/entity"
)

// BM25 parameters, standard values.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Index is a keyword index over corpus chunks. The snapshot it serves
// from is immutable; Rebuild constructs a fresh snapshot and swaps the
// pointer atomically, so concurrent readers never observe a partially
// built index.
type Index struct {
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	chunks    []*entity.CorpusChunk
	docTokens [][]string
	docFreq   map[string]int
	docLen    []int
	avgDocLen float64
}

func NewIndex() *Index {
	idx := &Index{}
	idx.snapshot.Store(buildSnapshot(nil))
	return idx
}

// Rebuild replaces the whole index with one built from the given chunks.
func (x *Index) Rebuild(chunks []*entity.CorpusChunk) {
	x.snapshot.Store(buildSnapshot(chunks))
}

func (x *Index) Size() int {
	return len(x.snapshot.Load().chunks)
}

func buildSnapshot(chunks []*entity.CorpusChunk) *snapshot {
	s := &snapshot{
		chunks:    chunks,
		docTokens: make([][]string, len(chunks)),
		docFreq:   make(map[string]int),
		docLen:    make([]int, len(chunks)),
	}

	totalLen := 0
	for i, c := range chunks {
		tokens := Tokenize(c.Document)
		s.docTokens[i] = tokens
		s.docLen[i] = len(tokens)
		totalLen += len(tokens)

		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			s.docFreq[t]++
		}
	}
	if len(chunks) > 0 {
		s.avgDocLen = float64(totalLen) / float64(len(chunks))
	}
	return s
}

// ScoredChunk pairs a chunk with its BM25 score.
type ScoredChunk struct {
	Chunk *entity.CorpusChunk
	Score float64
}

// Search ranks chunks against the query by BM25 and returns the top k.
// The query should already be normalized (lower-cased, whitespace
// collapsed); tokenization strips remaining punctuation.
func (x *Index) Search(query string, k int) []*ScoredChunk {
	s := x.snapshot.Load()
	if len(s.chunks) == 0 || k <= 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	n := float64(len(s.chunks))
	scores := make([]float64, len(s.chunks))

	for _, qt := range queryTokens {
		df, ok := s.docFreq[qt]
		if !ok {
			continue
		}
		// Smoothed IDF, never negative
		idf := math.Log(1 + (n-float64(df)+0.5)/(float64(df)+0.5))

		for i := range s.chunks {
			tf := 0
			for _, t := range s.docTokens[i] {
				if t == qt {
					tf++
				}
			}
			if tf == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(s.docLen[i])/s.avgDocLen
			scores[i] += idf * (float64(tf) * (bm25K1 + 1)) / (float64(tf) + bm25K1*norm)
		}
	}

	order := make([]int, len(s.chunks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]*ScoredChunk, 0, k)
	for _, i := range order {
		if scores[i] <= 0 {
			break
		}
		out = append(out, &ScoredChunk{Chunk: s.chunks[i], Score: scores[i]})
		if len(out) == k {
			break
		}
	}
	return out
}

// Tokenize lower-cases and splits on anything that is not a letter or
// digit. Umlauts and other letters survive, which matters for German
// page names and proper nouns.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
