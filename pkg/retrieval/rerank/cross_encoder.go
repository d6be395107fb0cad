package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Scorer assigns a relevance score to each document for a query.
// Higher is more relevant; scores may be negative.
type Scorer interface {
	Score(ctx context.Context, query string, documents []string) ([]float64, error)
}

const (
	// Cross encoders sit near a 512 token limit; documents are cut to
	// this many characters, breaking at the last whitespace.
	DocMaxChars = 450
	BatchSize   = 8
)

// CrossEncoderClient scores (query, document) pairs against an HTTP
// reranker service exposing a TEI-style /rerank endpoint.
type CrossEncoderClient struct {
	baseURL string
	client  *http.Client
}

func NewCrossEncoderClient(baseURL string) *CrossEncoderClient {
	return &CrossEncoderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type rerankRequest struct {
	Query string   `json:"query"`
	Texts []string `json:"texts"`
}

type rerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Score sends the documents in fixed-size batches and returns one score
// per input document, in input order.
func (c *CrossEncoderClient) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	scores := make([]float64, 0, len(documents))

	for start := 0; start < len(documents); start += BatchSize {
		end := start + BatchSize
		if end > len(documents) {
			end = len(documents)
		}

		batch := make([]string, 0, end-start)
		for _, d := range documents[start:end] {
			batch = append(batch, TruncateForScoring(d))
		}

		batchScores, err := c.scoreBatch(ctx, query, batch)
		if err != nil {
			return nil, err
		}
		scores = append(scores, batchScores...)
	}

	return scores, nil
}

func (c *CrossEncoderClient) scoreBatch(ctx context.Context, query string, texts []string) ([]float64, error) {
	payload, err := json.Marshal(rerankRequest{Query: query, Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/rerank", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rerank response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reranker returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []rerankResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("unmarshal rerank response: %w", err)
	}
	if len(results) != len(texts) {
		return nil, fmt.Errorf("reranker returned %d scores for %d texts", len(results), len(texts))
	}

	// The service ranks by score; restore input order via index
	scores := make([]float64, len(texts))
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(scores) {
			return nil, fmt.Errorf("reranker returned out-of-range index %d", r.Index)
		}
		scores[r.Index] = r.Score
	}
	return scores, nil
}

// TruncateForScoring cuts a document to DocMaxChars, breaking at the
// last whitespace before the limit to avoid mid-word cuts.
func TruncateForScoring(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return " "
	}
	if len(text) <= DocMaxChars {
		return text
	}
	cut := text[:DocMaxChars]
	if i := strings.LastIndex(cut, " "); i > 0 {
		return cut[:i]
	}
	return cut
}
