package lexical

import (
	"fmt"
	"sync"
	"testing"

	"clinic-assistant-be/internal/entity"

	"github.com/google/uuid"
)

func chunk(doc string) *entity.CorpusChunk {
	return &entity.CorpusChunk{
		Id:         uuid.New(),
		Document:   doc,
		SourceName: "test",
		SourceType: entity.SourceTypeWeb,
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentence",
			text: "The clinic opens at 9",
			want: []string{"the", "clinic", "opens", "at", "9"},
		},
		{
			name: "punctuation stripped",
			text: "Opening-hours: Mo-Fr, 09:00!",
			want: []string{"opening", "hours", "mo", "fr", "09", "00"},
		},
		{
			name: "german umlauts survive",
			text: "Öffnungszeiten für Physiotherapie",
			want: []string{"öffnungszeiten", "für", "physiotherapie"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSearchRanksExactTermsFirst(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]*entity.CorpusChunk{
		chunk("Our physiotherapy team treats back pain and joint problems."),
		chunk("The clinic cafeteria serves lunch between noon and two."),
		chunk("Physiotherapy physiotherapy appointments are available daily."),
	})

	results := idx.Search("physiotherapy", 3)
	if len(results) != 2 {
		t.Fatalf("expected 2 matching chunks, got %d", len(results))
	}
	// The doc mentioning the term twice in fewer words scores higher.
	if results[0].Chunk.Document[:14] != "Physiotherapy " {
		t.Errorf("expected term-dense chunk first, got %q", results[0].Chunk.Document)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestSearchSkipsZeroScores(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]*entity.CorpusChunk{
		chunk("Massage pricing starts at forty euros."),
		chunk("Parking is behind the building."),
	})

	results := idx.Search("acupuncture", 5)
	if len(results) != 0 {
		t.Fatalf("expected no results for unseen term, got %d", len(results))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := NewIndex()

	if got := idx.Search("anything", 5); got != nil {
		t.Fatalf("expected nil from empty index, got %v", got)
	}
	if idx.Size() != 0 {
		t.Fatalf("fresh index should be empty, size %d", idx.Size())
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	idx := NewIndex()
	var chunks []*entity.CorpusChunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, chunk(fmt.Sprintf("massage therapy option %d", i)))
	}
	idx.Rebuild(chunks)

	results := idx.Search("massage", 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestRebuildSwapsAtomically(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]*entity.CorpusChunk{chunk("massage basics")})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers hammer the index while rebuilds happen. Every read must
	// see either the old or the new snapshot, never a torn one.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				results := idx.Search("massage", 10)
				if len(results) != 1 && len(results) != 5 {
					t.Errorf("observed snapshot with %d results", len(results))
					return
				}
				if n := idx.Size(); n != 1 && n != 5 {
					t.Errorf("observed snapshot with %d chunks", n)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			idx.Rebuild([]*entity.CorpusChunk{
				chunk("massage one"), chunk("massage two"), chunk("massage three"),
				chunk("massage four"), chunk("massage five"),
			})
		} else {
			idx.Rebuild([]*entity.CorpusChunk{chunk("massage basics")})
		}
	}
	close(stop)
	wg.Wait()
}
