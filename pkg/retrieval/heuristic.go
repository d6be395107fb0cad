package retrieval

import (
	"regexp"
	"sort"
	"strings"

	"clinic-assistant-be/internal/entity"
)

var hoursIndicators = []string{
	"opening hours",
	"open hours",
	"öffnungszeiten",
	"oeffnungszeiten",
	"when is",
	"wann",
	"available",
	"availability",
	"open",
	"geöffnet",
	"geoeffnet",
}

var clockPatternRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)

// heuristicSort reorders candidates without the cross-encoder. Only
// "opening hours / availability" questions get special handling, the
// single most business-critical query pattern; everything else keeps
// the deduplicated merge order.
func heuristicSort(query string, chunks []*entity.CorpusChunk) []*entity.CorpusChunk {
	q := strings.ToLower(query)
	wantsHours := false
	for _, t := range hoursIndicators {
		if strings.Contains(q, t) {
			wantsHours = true
			break
		}
	}
	if !wantsHours || len(chunks) == 0 {
		return chunks
	}

	type scored struct {
		score int
		idx   int
		chunk *entity.CorpusChunk
	}

	scoredChunks := make([]scored, len(chunks))
	for i, c := range chunks {
		name := strings.ToLower(strings.TrimSpace(c.SourceName))
		content := strings.ToLower(c.Document)

		score := 0

		// Prefer the actual functioTraining pages
		if strings.Contains(name, "functiotraining") {
			score += 12
		}
		if strings.Contains(name, "angebot_functiotraining") {
			score += 20
		}

		// Prefer chunks that mention opening hours / training area hours
		if strings.Contains(content, "öffnungszeiten") || strings.Contains(content, "oeffnungszeiten") ||
			strings.Contains(content, "opening hours") {
			score += 10
		}
		if strings.Contains(content, "trainingsfläche") || strings.Contains(content, "trainingsflaeche") ||
			strings.Contains(content, "trainingsfla") {
			score += 6
		}

		// Prefer chunks that contain explicit time patterns
		if clockPatternRe.MatchString(content) {
			score += 3
		}

		scoredChunks[i] = scored{score: score, idx: i, chunk: c}
	}

	sort.SliceStable(scoredChunks, func(a, b int) bool {
		if scoredChunks[a].score != scoredChunks[b].score {
			return scoredChunks[a].score > scoredChunks[b].score
		}
		return scoredChunks[a].idx < scoredChunks[b].idx
	})

	out := make([]*entity.CorpusChunk, len(scoredChunks))
	for i, sc := range scoredChunks {
		out[i] = sc.chunk
	}
	return out
}
