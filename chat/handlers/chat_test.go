package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	chatdomain "github.com/dumplinhq/dumplin-api/chat/domain"
	chatmocks "github.com/dumplinhq/dumplin-api/chat/service/mocks"
	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/logger"
	"github.com/dumplinhq/dumplin-api/subscription/dal"
	subdomain "github.com/dumplinhq/dumplin-api/subscription/domain"
	submocks "github.com/dumplinhq/dumplin-api/subscription/service/mocks"
)

func testLoggerProvider(ctx context.Context) logger.ILogger {
	return &logger.Logger{}
}

func chatTestContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req

	return ctx, recorder
}

func TestSendMessage(t *testing.T) {
	subs := &submocks.SubscriptionService{}
	subs.On("CheckMessageLimit", mock.Anything, "user-1", subdomain.QuotaWindow{MessageCount: 4}).
		Return(&subdomain.MessageLimitResponse{
			Allowed:   true,
			Remaining: common.Int(16),
			Limit:     20,
		}, nil)

	chatSvc := &chatmocks.ChatService{}
	chatSvc.On("ProcessMessage", mock.Anything, mock.Anything).
		Return(&chatdomain.ChatResponse{
			MessageID: "msg-1",
			Reply:     "You said: hello",
		}, nil)

	h := &Chat{loggerProvider: testLoggerProvider, chat: chatSvc, subscriptions: subs}

	ctx, recorder := chatTestContext(t, `{"user_id": "user-1", "message": "hello", "message_count": 4}`)

	assert.NoError(t, h.SendMessage(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp chatdomain.ChatResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "You said: hello", resp.Reply)
	assert.Equal(t, common.Int(16), resp.RemainingMessages)
}

func TestSendMessage_RateLimited(t *testing.T) {
	subs := &submocks.SubscriptionService{}
	subs.On("CheckMessageLimit", mock.Anything, "user-1", mock.Anything).
		Return(&subdomain.MessageLimitResponse{
			Allowed:   false,
			Remaining: common.Int(0),
			Limit:     20,
			Message:   "You've reached your weekly limit of 20 messages. Upgrade to Pro for unlimited messages.",
		}, nil)

	chatSvc := &chatmocks.ChatService{}

	h := &Chat{loggerProvider: testLoggerProvider, chat: chatSvc, subscriptions: subs}

	ctx, recorder := chatTestContext(t, `{"user_id": "user-1", "message": "hello", "message_count": 20}`)

	assert.NoError(t, h.SendMessage(ctx))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	chatSvc.AssertNotCalled(t, "ProcessMessage")
}

func TestSendMessage_MissingFields(t *testing.T) {
	subs := &submocks.SubscriptionService{}
	h := &Chat{loggerProvider: testLoggerProvider, chat: &chatmocks.ChatService{}, subscriptions: subs}

	ctx, _ := chatTestContext(t, `{"user_id": "user-1"}`)

	err := h.SendMessage(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.Status)
	subs.AssertNotCalled(t, "CheckMessageLimit")
}

func TestSendMessage_NegativeCount(t *testing.T) {
	subs := &submocks.SubscriptionService{}
	h := &Chat{loggerProvider: testLoggerProvider, chat: &chatmocks.ChatService{}, subscriptions: subs}

	ctx, _ := chatTestContext(t, `{"user_id": "user-1", "message": "hello", "message_count": -1}`)

	err := h.SendMessage(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.Status)
	subs.AssertNotCalled(t, "CheckMessageLimit")
}

func TestSendMessage_StoreUnavailable(t *testing.T) {
	subs := &submocks.SubscriptionService{}
	subs.On("CheckMessageLimit", mock.Anything, "user-1", mock.Anything).Return(nil, dal.ErrStoreUnavailable)

	h := &Chat{loggerProvider: testLoggerProvider, chat: &chatmocks.ChatService{}, subscriptions: subs}

	ctx, _ := chatTestContext(t, `{"user_id": "user-1", "message": "hello"}`)

	err := h.SendMessage(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusServiceUnavailable, webErr.Status)
}

func TestGetMessageLimit(t *testing.T) {
	subs := &submocks.SubscriptionService{}
	subs.On("CheckMessageLimit", mock.Anything, "user-1", subdomain.QuotaWindow{MessageCount: 12}).
		Return(&subdomain.MessageLimitResponse{
			Allowed:   true,
			Remaining: common.Int(8),
			Limit:     20,
		}, nil)

	h := &Chat{loggerProvider: testLoggerProvider, chat: &chatmocks.ChatService{}, subscriptions: subs}

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Params = gin.Params{{Key: "userID", Value: "user-1"}}
	ctx.Request = httptest.NewRequest(http.MethodGet, "/chat/limit/user-1?message_count=12", nil)

	assert.NoError(t, h.GetMessageLimit(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp subdomain.MessageLimitResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, common.Int(8), resp.Remaining)
}
