package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeRetriever struct {
	chunks  []*entity.CorpusChunk
	err     error
	desired int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, desired int) ([]*entity.CorpusChunk, error) {
	f.desired = desired
	return f.chunks, f.err
}

type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func textChunk(doc string) *entity.CorpusChunk {
	return &entity.CorpusChunk{Id: uuid.New(), Document: doc, SourceType: entity.SourceTypeWeb}
}

func TestAnswerBuildsPromptFromContext(t *testing.T) {
	retriever := &fakeRetriever{chunks: []*entity.CorpusChunk{
		textChunk("Öffnungszeiten: Mo-Fr 08:00-18:00"),
		textChunk("Termine unter 0123 456789"),
	}}
	provider := &fakeLLM{reply: "We are open Monday to Friday, 8 to 18."}

	c := NewComposer(retriever, provider, 20, noopLogger{})

	answer, err := c.Answer(context.Background(), "What are your opening hours?")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if answer != provider.reply {
		t.Errorf("answer = %q, want provider reply verbatim", answer)
	}

	if retriever.desired != 20 {
		t.Errorf("composer requested %d chunks, want 20", retriever.desired)
	}
	if !strings.Contains(provider.prompt, "Öffnungszeiten: Mo-Fr 08:00-18:00") {
		t.Error("prompt missing first context chunk")
	}
	if !strings.Contains(provider.prompt, "Termine unter 0123 456789") {
		t.Error("prompt missing second context chunk")
	}
	if !strings.Contains(provider.prompt, "What are your opening hours?") {
		t.Error("prompt missing user question")
	}
	if !strings.Contains(provider.prompt, "functiomed") {
		t.Error("prompt missing clinic identity")
	}
}

func TestAnswerNoContextApologizes(t *testing.T) {
	c := NewComposer(&fakeRetriever{}, &fakeLLM{reply: "should not be called"}, 20, noopLogger{})

	answer, err := c.Answer(context.Background(), "obscure question")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if answer != "I'm sorry, I couldn't find any relevant information." {
		t.Errorf("unexpected empty-context answer: %q", answer)
	}
}

func TestAnswerRetrievalErrorDegrades(t *testing.T) {
	c := NewComposer(
		&fakeRetriever{err: errors.New("db down")},
		&fakeLLM{reply: "unused"},
		20,
		noopLogger{},
	)

	answer, err := c.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer must not propagate retrieval errors, got %v", err)
	}
	if answer != "I'm sorry, I couldn't find any relevant information." {
		t.Errorf("unexpected degraded answer: %q", answer)
	}
}

func TestAnswerCompletionErrorDegrades(t *testing.T) {
	c := NewComposer(
		&fakeRetriever{chunks: []*entity.CorpusChunk{textChunk("context")}},
		&fakeLLM{err: errors.New("model offline")},
		20,
		noopLogger{},
	)

	answer, err := c.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer must not propagate completion errors, got %v", err)
	}
	if !strings.Contains(answer, "Fehler beim Abrufen der Antwort") {
		t.Errorf("unexpected completion-failure answer: %q", answer)
	}
}

func TestNewComposerDefaultsContextChunks(t *testing.T) {
	retriever := &fakeRetriever{chunks: []*entity.CorpusChunk{textChunk("x")}}
	c := NewComposer(retriever, &fakeLLM{reply: "ok"}, 0, noopLogger{})

	if _, err := c.Answer(context.Background(), "q"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if retriever.desired != 20 {
		t.Errorf("zero config should default to 20 chunks, got %d", retriever.desired)
	}
}
