package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dumplinhq/dumplin-api/chat/domain"
	"github.com/dumplinhq/dumplin-api/logger"
)

//go:generate mockery --name ChatService --output=./mocks
type ChatService interface {
	ProcessMessage(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error)
}

// Service produces chat replies. Message generation is a placeholder echo
// until the model backend is wired in.
// TODO: replace the echo with the dumpling-recipe model call once its API is stable.
type Service struct {
	loggerProvider logger.Provider
	now            func() time.Time
}

func NewChatService(log logger.Provider) *Service {
	return &Service{
		loggerProvider: log,
		now:            time.Now,
	}
}

func (s *Service) ProcessMessage(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	s.loggerProvider(ctx).Infof("processing chat message for user %s", req.UserID)

	now := s.now().UTC()

	return &domain.ChatResponse{
		MessageID: uuid.NewString(),
		Reply:     fmt.Sprintf("You said: %s", req.Message),
		CreatedAt: &now,
	}, nil
}
