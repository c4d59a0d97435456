package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dumplinhq/dumplin-api/common"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/subscription/dal"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
	"github.com/dumplinhq/dumplin-api/subscription/service/mocks"
)

func statusTestContext(t *testing.T, userID, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	ctx.Params = gin.Params{{Key: "userID", Value: userID}}
	ctx.Request = httptest.NewRequest(http.MethodGet, "/subscriptions/status/"+userID+"?"+rawQuery, nil)

	return ctx, recorder
}

func TestGetStatus(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	svc.On("GetStatus", mock.Anything, "user-1", domain.QuotaWindow{MessageCount: 5}).
		Return(&domain.StatusResponse{
			UserID:            "user-1",
			IsPro:             false,
			Status:            domain.StatusExpired,
			RemainingMessages: common.Int(15),
			WeeklyLimit:       20,
		}, nil)

	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, recorder := statusTestContext(t, "user-1", "message_count=5")

	assert.NoError(t, h.GetStatus(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp domain.StatusResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, common.Int(15), resp.RemainingMessages)
}

func TestGetStatus_WindowStartQueryParam(t *testing.T) {
	windowStart := int64(1717243200000)

	svc := &mocks.SubscriptionService{}
	svc.On("GetStatus", mock.Anything, "user-1", domain.QuotaWindow{MessageCount: 20, WindowStartMs: &windowStart}).
		Return(&domain.StatusResponse{UserID: "user-1"}, nil)

	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, _ := statusTestContext(t, "user-1", "message_count=20&week_start_ms=1717243200000")

	assert.NoError(t, h.GetStatus(ctx))
	svc.AssertExpectations(t)
}

func TestGetStatus_InvalidQuery(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, _ := statusTestContext(t, "user-1", "message_count=lots")

	err := h.GetStatus(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.Status)
	svc.AssertNotCalled(t, "GetStatus")
}

func TestGetStatus_StoreTimeout(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	svc.On("GetStatus", mock.Anything, "user-1", mock.Anything).Return(nil, dal.ErrStoreTimeout)

	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, _ := statusTestContext(t, "user-1", "")

	err := h.GetStatus(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusServiceUnavailable, webErr.Status)
}

func limitTestContext(t *testing.T, userID, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	ctx.Params = gin.Params{{Key: "userID", Value: userID}}
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/check-message-limit/"+userID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req

	return ctx, recorder
}

func TestCheckMessageLimit_Allowed(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	svc.On("CheckMessageLimit", mock.Anything, "user-1", domain.QuotaWindow{MessageCount: 3}).
		Return(&domain.MessageLimitResponse{
			Allowed:   true,
			Remaining: common.Int(17),
			Limit:     20,
		}, nil)

	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, recorder := limitTestContext(t, "user-1", `{"message_count": 3}`)

	assert.NoError(t, h.CheckMessageLimit(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCheckMessageLimit_Blocked(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	svc.On("CheckMessageLimit", mock.Anything, "user-1", domain.QuotaWindow{MessageCount: 20}).
		Return(&domain.MessageLimitResponse{
			Allowed:   false,
			Remaining: common.Int(0),
			Limit:     20,
			Message:   "You've reached your weekly limit of 20 messages. Upgrade to Pro for unlimited messages.",
		}, nil)

	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, recorder := limitTestContext(t, "user-1", `{"message_count": 20}`)

	assert.NoError(t, h.CheckMessageLimit(ctx))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	var resp domain.MessageLimitResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Allowed)
	assert.Contains(t, resp.Message, "Upgrade to Pro")
}

func TestCheckMessageLimit_InvalidBody(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, _ := limitTestContext(t, "user-1", `{`)

	err := h.CheckMessageLimit(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.Status)
}

func TestCheckMessageLimit_NegativeCount(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, _ := limitTestContext(t, "user-1", `{"message_count": -5}`)

	err := h.CheckMessageLimit(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.Status)
	svc.AssertNotCalled(t, "CheckMessageLimit")
}

func TestGetStatus_MissingUserID(t *testing.T) {
	svc := &mocks.SubscriptionService{}
	h := &Subscription{loggerProvider: testLoggerProvider, service: svc}

	ctx, _ := statusTestContext(t, "", "")

	err := h.GetStatus(ctx)

	var webErr *web.Error
	assert.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.Status)
}
