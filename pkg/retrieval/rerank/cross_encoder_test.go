package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTruncateForScoring(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text untouched",
			text: "Opening hours are 9 to 5.",
			want: "Opening hours are 9 to 5.",
		},
		{
			name: "empty becomes single space",
			text: "",
			want: " ",
		},
		{
			name: "whitespace trimmed",
			text: "  padded  ",
			want: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForScoring(tt.text); got != tt.want {
				t.Errorf("TruncateForScoring(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncateForScoringBreaksAtWhitespace(t *testing.T) {
	word := "clinic "
	long := strings.Repeat(word, 100) // 700 chars

	got := TruncateForScoring(long)
	if len(got) > DocMaxChars {
		t.Fatalf("truncated doc is %d chars, limit %d", len(got), DocMaxChars)
	}
	if strings.HasSuffix(got, "clini") || strings.HasSuffix(got, "cl") {
		t.Errorf("truncation cut mid-word: %q", got[len(got)-10:])
	}
	if !strings.HasSuffix(got, "clinic") {
		t.Errorf("expected cut at word boundary, got %q", got[len(got)-10:])
	}
}

func TestTruncateForScoringNoWhitespace(t *testing.T) {
	long := strings.Repeat("x", DocMaxChars+100)

	got := TruncateForScoring(long)
	if len(got) != DocMaxChars {
		t.Fatalf("unbroken text must hard-cut to %d, got %d", DocMaxChars, len(got))
	}
}

func TestScoreBatchesAndRestoresOrder(t *testing.T) {
	var batches [][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rerankRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		batches = append(batches, req.Texts)

		// Respond sorted by descending score with explicit indices,
		// the way TEI rerankers do.
		results := make([]rerankResult, len(req.Texts))
		for i, text := range req.Texts {
			// Score encodes the document number so the test can verify
			// order restoration.
			var docNum int
			fmt.Sscanf(text, "doc %d", &docNum)
			results[i] = rerankResult{Index: i, Score: float64(docNum)}
		}
		// Reverse to prove index-based restoration matters.
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
		json.NewEncoder(w).Encode(results)
	}))
	defer srv.Close()

	client := NewCrossEncoderClient(srv.URL)

	docs := make([]string, 11)
	for i := range docs {
		docs[i] = fmt.Sprintf("doc %d", i)
	}

	scores, err := client.Score(context.Background(), "query", docs)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if len(scores) != 11 {
		t.Fatalf("expected 11 scores, got %d", len(scores))
	}
	for i, s := range scores {
		if s != float64(i) {
			t.Errorf("score %d = %v, want %v (order not restored)", i, s, float64(i))
		}
	}

	// 11 docs at batch size 8 means two requests: 8 then 3.
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if len(batches[0]) != 8 || len(batches[1]) != 3 {
		t.Errorf("batch sizes = %d, %d; want 8, 3", len(batches[0]), len(batches[1]))
	}
}

func TestScorePropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewCrossEncoderClient(srv.URL)

	_, err := client.Score(context.Background(), "query", []string{"doc"})
	if err == nil {
		t.Fatal("expected error from 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestScoreRejectsShortResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]rerankResult{{Index: 0, Score: 1.0}})
	}))
	defer srv.Close()

	client := NewCrossEncoderClient(srv.URL)

	_, err := client.Score(context.Background(), "query", []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error when score count mismatches document count")
	}
}
