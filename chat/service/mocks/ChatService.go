package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dumplinhq/dumplin-api/chat/domain"
)

type ChatService struct {
	mock.Mock
}

func (m *ChatService) ProcessMessage(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	args := m.Called(ctx, req)

	var resp *domain.ChatResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*domain.ChatResponse)
	}

	return resp, args.Error(1)
}
