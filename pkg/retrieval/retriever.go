package retrieval

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/pkg/logger"
	"clinic-assistant-be/internal/repository/contract"
	"clinic-assistant-be/pkg/retrieval/intent"
	"clinic-assistant-be/pkg/retrieval/lexical"
	"clinic-assistant-be/pkg/retrieval/rerank"
)

// Config tunes the hybrid retrieval pipeline.
type Config struct {
	// RelevanceThreshold applies to boosted scores; candidates below it
	// are only used to fill up when too few qualify.
	RelevanceThreshold float64
	// CandidateMultiplier controls how many candidates each retriever
	// contributes: desired * multiplier.
	CandidateMultiplier int
}

// SemanticSearcher finds chunks by vector similarity.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, k int) ([]*contract.ScoredCorpusChunk, error)
}

// LexicalSearcher finds chunks by keyword ranking.
type LexicalSearcher interface {
	Search(query string, k int) []*lexical.ScoredChunk
}

// RankedResult is a chunk with its final boosted score and the raw
// pre-boost score kept for tie breaks and diagnostics.
type RankedResult struct {
	Chunk    *entity.CorpusChunk
	Score    float64
	PreBoost float64
	order    int
}

// Retriever fuses semantic and lexical candidates, applies intent-aware
// boosting, optionally reranks with a cross-encoder, and filters by a
// relevance threshold with graceful degradation.
type Retriever struct {
	semantic SemanticSearcher
	lexical  LexicalSearcher
	scorer   rerank.Scorer // nil disables cross-encoder scoring
	cfg      Config
	log      logger.ILogger
}

func NewRetriever(semantic SemanticSearcher, lex LexicalSearcher, scorer rerank.Scorer, cfg Config, log logger.ILogger) *Retriever {
	if cfg.CandidateMultiplier <= 0 {
		cfg.CandidateMultiplier = 4
	}
	return &Retriever{
		semantic: semantic,
		lexical:  lex,
		scorer:   scorer,
		cfg:      cfg,
		log:      log,
	}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeQuery lower-cases and collapses whitespace. All tokens are
// kept, clinic-specific proper nouns matter for keyword matching.
func NormalizeQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(q, " "))
}

// Retrieve returns up to desired chunks ordered most relevant first.
// An empty result means deduplication produced zero candidates.
func (r *Retriever) Retrieve(ctx context.Context, query string, desired int) ([]*entity.CorpusChunk, error) {
	if desired <= 0 {
		desired = 6
	}

	queryIntent := intent.Classify(query)
	webBoost := intent.WebBoost(queryIntent)
	nCandidates := desired * r.cfg.CandidateMultiplier

	r.log.Debug("retrieval", "starting hybrid retrieval", map[string]interface{}{
		"query":      truncate(query, 80),
		"intent":     string(queryIntent),
		"web_boost":  webBoost,
		"candidates": nCandidates,
		"desired":    desired,
	})

	semanticChunks, err := r.semantic.Search(ctx, query, nCandidates)
	if err != nil {
		r.log.Error("retrieval", "semantic search failed", map[string]interface{}{
			"error": err.Error(),
		})
		semanticChunks = nil
	}

	lexicalChunks := r.lexical.Search(NormalizeQuery(query), nCandidates)

	combined := dedupe(semanticChunks, lexicalChunks)
	if len(combined) == 0 {
		r.log.Warn("retrieval", "no candidates found", map[string]interface{}{
			"query": truncate(query, 80),
		})
		return nil, nil
	}

	if r.scorer == nil {
		return chunksOf(heuristicSort(query, combined), desired), nil
	}

	documents := make([]string, len(combined))
	for i, c := range combined {
		documents[i] = c.Document
	}
	scores, err := r.scorer.Score(ctx, query, documents)
	if err != nil {
		r.log.Warn("retrieval", "reranker failed, using heuristic order", map[string]interface{}{
			"error": err.Error(),
		})
		return chunksOf(heuristicSort(query, combined), desired), nil
	}

	ranked := make([]*RankedResult, len(combined))
	for i, c := range combined {
		boosted := scores[i]
		if c.SourceType == entity.SourceTypeWeb {
			boosted += webBoost
		}
		ranked[i] = &RankedResult{
			Chunk:    c,
			Score:    boosted,
			PreBoost: scores[i],
			order:    i,
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Score != ranked[b].Score {
			return ranked[a].Score > ranked[b].Score
		}
		if ranked[a].PreBoost != ranked[b].PreBoost {
			return ranked[a].PreBoost > ranked[b].PreBoost
		}
		return ranked[a].order < ranked[b].order
	})

	selected := r.applyThreshold(ranked, desired)

	out := make([]*entity.CorpusChunk, len(selected))
	for i, rr := range selected {
		out[i] = rr.Chunk
	}
	return out, nil
}

// applyThreshold keeps candidates at or above the relevance threshold,
// filling from below-threshold candidates when too few qualify. Never
// returns an empty selection while ranked candidates exist.
func (r *Retriever) applyThreshold(ranked []*RankedResult, desired int) []*RankedResult {
	var above, below []*RankedResult
	for _, rr := range ranked {
		if rr.Score >= r.cfg.RelevanceThreshold {
			above = append(above, rr)
		} else {
			below = append(below, rr)
		}
	}

	switch {
	case len(above) == 0:
		if len(ranked) > desired {
			return ranked[:desired]
		}
		return ranked
	case len(above) >= desired:
		return above[:desired]
	default:
		need := desired - len(above)
		if need > len(below) {
			need = len(below)
		}
		return append(above, below[:need]...)
	}
}

// dedupe merges both candidate lists, dropping exact duplicate chunk
// text. Semantic candidates come first, so they win ties.
func dedupe(semantic []*contract.ScoredCorpusChunk, lex []*lexical.ScoredChunk) []*entity.CorpusChunk {
	seen := make(map[string]struct{}, len(semantic)+len(lex))
	out := make([]*entity.CorpusChunk, 0, len(semantic)+len(lex))

	for _, s := range semantic {
		if _, ok := seen[s.Chunk.Document]; ok {
			continue
		}
		seen[s.Chunk.Document] = struct{}{}
		out = append(out, s.Chunk)
	}
	for _, l := range lex {
		if _, ok := seen[l.Chunk.Document]; ok {
			continue
		}
		seen[l.Chunk.Document] = struct{}{}
		out = append(out, l.Chunk)
	}
	return out
}

func chunksOf(chunks []*entity.CorpusChunk, desired int) []*entity.CorpusChunk {
	if len(chunks) > desired {
		return chunks[:desired]
	}
	return chunks
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
