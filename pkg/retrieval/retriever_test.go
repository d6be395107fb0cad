package retrieval

import (
	"context"
	"errors"
	"testing"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/repository/contract"
	"clinic-assistant-be/pkg/retrieval/lexical"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeSemantic struct {
	chunks []*contract.ScoredCorpusChunk
	err    error
}

func (f *fakeSemantic) Search(ctx context.Context, query string, k int) ([]*contract.ScoredCorpusChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.chunks) > k {
		return f.chunks[:k], nil
	}
	return f.chunks, nil
}

type fakeLexical struct {
	chunks []*lexical.ScoredChunk
}

func (f *fakeLexical) Search(query string, k int) []*lexical.ScoredChunk {
	if len(f.chunks) > k {
		return f.chunks[:k]
	}
	return f.chunks
}

type fakeScorer struct {
	scores map[string]float64
	err    error
}

func (f *fakeScorer) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]float64, len(documents))
	for i, d := range documents {
		out[i] = f.scores[d]
	}
	return out, nil
}

func webChunk(doc, source string) *entity.CorpusChunk {
	return &entity.CorpusChunk{Id: uuid.New(), Document: doc, SourceName: source, SourceType: entity.SourceTypeWeb}
}

func docChunk(doc, source string) *entity.CorpusChunk {
	return &entity.CorpusChunk{Id: uuid.New(), Document: doc, SourceName: source, SourceType: entity.SourceTypeDocument}
}

func semanticResults(chunks ...*entity.CorpusChunk) []*contract.ScoredCorpusChunk {
	out := make([]*contract.ScoredCorpusChunk, len(chunks))
	for i, c := range chunks {
		out[i] = &contract.ScoredCorpusChunk{Chunk: c, Similarity: 0.9}
	}
	return out
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  What   ARE your\tHours? ", "what are your hours?"},
		{"Öffnungszeiten", "öffnungszeiten"},
		{"", ""},
		{"one\n\ntwo", "one two"},
	}
	for _, tt := range tests {
		if got := NormalizeQuery(tt.in); got != tt.want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRetrieveBoostsWebChunksForInformationQueries(t *testing.T) {
	web := webChunk("The clinic opens at 8 on weekdays.", "kontakt")
	doc := docChunk("Internal memo about schedules.", "doc__memo")

	// Identical raw scores; the information intent boost must lift the
	// web chunk above the document chunk.
	r := NewRetriever(
		&fakeSemantic{chunks: semanticResults(doc, web)},
		&fakeLexical{},
		&fakeScorer{scores: map[string]float64{web.Document: 1.0, doc.Document: 1.0}},
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "What are your opening hours?", 2)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Id != web.Id {
		t.Errorf("web chunk should rank first after boost, got %q", got[0].SourceName)
	}
}

func TestRetrieveNoBoostForFormQueries(t *testing.T) {
	web := webChunk("General info page.", "home")
	doc := docChunk("Registration form contents.", "doc__anmeldung")

	r := NewRetriever(
		&fakeSemantic{chunks: semanticResults(web, doc)},
		&fakeLexical{},
		&fakeScorer{scores: map[string]float64{web.Document: 0.5, doc.Document: 1.0}},
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "Where is the registration form to fill out?", 2)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	// Form intent carries zero web boost, so the raw scores decide.
	if got[0].Id != doc.Id {
		t.Errorf("document chunk should rank first without a boost")
	}
}

func TestRetrieveThresholdFillsFromBelow(t *testing.T) {
	a := webChunk("Strong match.", "a")
	b := webChunk("Borderline match.", "b")
	c := webChunk("Weak match.", "c")

	r := NewRetriever(
		&fakeSemantic{chunks: semanticResults(a, b, c)},
		&fakeLexical{},
		&fakeScorer{scores: map[string]float64{
			a.Document: 2.0,
			b.Document: -8.0,
			c.Document: -9.0,
		}},
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "anything relevant", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	// One candidate passes the threshold; the rest fill from below in
	// score order rather than returning a single chunk.
	if len(got) != 3 {
		t.Fatalf("expected graceful fill to 3 chunks, got %d", len(got))
	}
	if got[0].Id != a.Id {
		t.Errorf("above-threshold chunk must come first")
	}
}

func TestRetrieveAllBelowThresholdReturnsBest(t *testing.T) {
	a := webChunk("First.", "a")
	b := webChunk("Second.", "b")

	r := NewRetriever(
		&fakeSemantic{chunks: semanticResults(a, b)},
		&fakeLexical{},
		&fakeScorer{scores: map[string]float64{a.Document: -10, b.Document: -20}},
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("all-below case must still return candidates, got %d", len(got))
	}
}

func TestRetrieveDeduplicatesAcrossSearchers(t *testing.T) {
	shared := webChunk("Shared chunk text.", "kontakt")
	// Same text arriving through the lexical path under a different row.
	sharedCopy := webChunk("Shared chunk text.", "kontakt")
	other := webChunk("Different text.", "home")

	r := NewRetriever(
		&fakeSemantic{chunks: semanticResults(shared)},
		&fakeLexical{chunks: []*lexical.ScoredChunk{
			{Chunk: sharedCopy, Score: 3.0},
			{Chunk: other, Score: 1.0},
		}},
		nil,
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "shared", 10)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 unique chunks, got %d", len(got))
	}
	// Semantic-first dedupe keeps the semantic row.
	if got[0].Id != shared.Id {
		t.Errorf("semantic candidate should win the duplicate")
	}
}

func TestRetrieveScorerErrorFallsBackToHeuristic(t *testing.T) {
	hours := webChunk("Öffnungszeiten: Mo-Fr 08:00-20:00", "angebot_functiotraining")
	filler := webChunk("Unser Team stellt sich vor.", "team")

	r := NewRetriever(
		&fakeSemantic{chunks: semanticResults(filler, hours)},
		&fakeLexical{},
		&fakeScorer{err: errors.New("reranker down")},
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "Wie sind die Öffnungszeiten?", 2)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got[0].Id != hours.Id {
		t.Errorf("heuristic fallback should put the hours page first")
	}
}

func TestHeuristicSortPrefersHoursSources(t *testing.T) {
	team := webChunk("Unser Team.", "team")
	training := webChunk("Die Trainingsfläche ist von 08:00 bis 20:00 geöffnet.", "angebot_functiotraining")
	generic := webChunk("Herzlich willkommen in unserer Praxis.", "home")

	sorted := heuristicSort("when is the training area open?", []*entity.CorpusChunk{team, generic, training})
	if sorted[0].Id != training.Id {
		t.Errorf("training hours chunk should rank first, got %q", sorted[0].SourceName)
	}

	// Non-hours queries keep the original order.
	same := heuristicSort("who works at the clinic?", []*entity.CorpusChunk{team, generic, training})
	if same[0].Id != team.Id || same[2].Id != training.Id {
		t.Errorf("non-hours query must not reorder")
	}
}

func TestRetrieveSemanticErrorStillServesLexical(t *testing.T) {
	lexOnly := webChunk("Preisliste für Massagen.", "preise")

	r := NewRetriever(
		&fakeSemantic{err: errors.New("db down")},
		&fakeLexical{chunks: []*lexical.ScoredChunk{{Chunk: lexOnly, Score: 2.0}}},
		nil,
		Config{RelevanceThreshold: -2.5, CandidateMultiplier: 4},
		noopLogger{},
	)

	got, err := r.Retrieve(context.Background(), "massage preis", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 1 || got[0].Id != lexOnly.Id {
		t.Fatalf("lexical candidates must survive a semantic outage")
	}
}
