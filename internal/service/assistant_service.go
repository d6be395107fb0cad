package service

import (
	"context"

	"clinic-assistant-be/internal/dto"
	"clinic-assistant-be/internal/pkg/logger"
	"clinic-assistant-be/internal/repository/memory"
	"clinic-assistant-be/pkg/dialog"
)

type IAssistantService interface {
	// Ask feeds one user message into the conversation and returns the
	// assistant's reply together with the dialogue state it ended in.
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	// Greet opens the conversation with the welcome message, creating
	// the session when the conversation is new.
	Greet(ctx context.Context, conversationId string) *dto.AskResponse
	// Reset drops the conversation's session so the next message starts
	// a fresh dialogue.
	Reset(ctx context.Context, conversationId string)
}

type assistantService struct {
	sessions *memory.SessionRepository
	engine   *dialog.Engine
	log      logger.ILogger
}

func NewAssistantService(
	sessions *memory.SessionRepository,
	engine *dialog.Engine,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessions: sessions,
		engine:   engine,
		log:      log,
	}
}

func (s *assistantService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	sess := s.sessions.GetOrCreate(req.ConversationId)

	reply := s.engine.ProcessTurn(ctx, sess, req.Message)

	// Saving refreshes the idle TTL as well.
	s.sessions.Save(sess)

	return &dto.AskResponse{
		ConversationId: sess.ConversationId,
		Reply:          reply,
		State:          string(sess.State),
		Language:       string(sess.Language),
	}, nil
}

func (s *assistantService) Greet(ctx context.Context, conversationId string) *dto.AskResponse {
	sess := s.sessions.GetOrCreate(conversationId)
	reply := s.engine.Greet(sess)
	s.sessions.Save(sess)

	return &dto.AskResponse{
		ConversationId: sess.ConversationId,
		Reply:          reply,
		State:          string(sess.State),
		Language:       string(sess.Language),
	}
}

func (s *assistantService) Reset(ctx context.Context, conversationId string) {
	s.sessions.Delete(conversationId)
	s.log.Debug("assistant", "session reset", map[string]interface{}{
		"conversation_id": conversationId,
	})
}
