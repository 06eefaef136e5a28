package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contactbook/internal/domain/service"
	mockService "contactbook/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

var errTemporary = errors.New("421 service not available")

func newTestProcessor(t *testing.T) (*MailProcessor, *mockService.MockMailSender) {
	sender := mockService.NewMockMailSender(t)

	return &MailProcessor{
		sender:      sender,
		isTransient: func(err error) bool { return errors.Is(err, errTemporary) },
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, sender
}

func pushBody(t *testing.T, payload []byte, attrs map[string]string) string {
	t.Helper()

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = attrs
	msg.Message.MessageID = "m-1"
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func mailPayload(t *testing.T) []byte {
	t.Helper()

	data, err := json.Marshal(service.MailMessage{
		Template:  service.TemplateVerifyEmail,
		Recipient: "ann@example.com",
		Subject:   "Confirm your email",
		Variables: map[string]string{"token": "t"},
	})
	require.NoError(t, err)

	return data
}

func servePush(h *PushHandler, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		req.Header[key] = values
	}
	rec := httptest.NewRecorder()
	_ = h.HandlePush(echo.New().NewContext(req, rec))

	return rec
}

func TestHandlePush_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		sendErr  error
		wantCode int
	}{
		{name: "delivered", wantCode: http.StatusOK},
		{name: "transient failure is redelivered", sendErr: errTemporary, wantCode: http.StatusServiceUnavailable},
		{name: "permanent failure is dropped", sendErr: errors.New("550 mailbox unavailable"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, sender := newTestProcessor(t)
			sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *service.MailMessage) bool {
				return msg.Recipient == "ann@example.com" && msg.RequestID == "req-7"
			})).Return(tt.sendErr)

			h := &PushHandler{processor: processor, logger: processor.logger}
			rec := servePush(h, pushBody(t, mailPayload(t), map[string]string{"request_id": "req-7"}), nil)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandlePush_MalformedEnvelope(t *testing.T) {
	processor, _ := newTestProcessor(t)
	h := &PushHandler{processor: processor, logger: processor.logger}

	rec := servePush(h, `{"message":{"data":"%%%"}}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePush_PoisonPayloadIsAcknowledged(t *testing.T) {
	processor, _ := newTestProcessor(t)
	h := &PushHandler{processor: processor, logger: processor.logger}

	rec := servePush(h, pushBody(t, []byte(`{"template":""}`), nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_VerifiesToken(t *testing.T) {
	processor, sender := newTestProcessor(t)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	var gotAudience string
	h := &PushHandler{
		verifyPushAuth: true,
		audience:       "https://worker.example.com/push",
		validate: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			if token != "good" {
				return nil, errors.New("bad signature")
			}

			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		},
		processor: processor,
		logger:    processor.logger,
	}
	body := pushBody(t, mailPayload(t), nil)

	rec := servePush(h, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, http.Header{"Authorization": {"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://worker.example.com/push", gotAudience)
}

func TestProcess_RequestIDFallbacks(t *testing.T) {
	processor, sender := newTestProcessor(t)

	var ids []string
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ids = append(ids, args.Get(1).(*service.MailMessage).RequestID)
	}).Return(nil)

	withBodyID, err := json.Marshal(service.MailMessage{Template: "t", Recipient: "a@b.co", RequestID: "from-body"})
	require.NoError(t, err)

	require.NoError(t, processor.Process(context.Background(), withBodyID, map[string]string{"request_id": "from-attr"}))
	require.NoError(t, processor.Process(context.Background(), withBodyID, nil))
	require.NoError(t, processor.Process(context.Background(), mailPayload(t), nil))

	require.Len(t, ids, 3)
	assert.Equal(t, "from-attr", ids[0])
	assert.Equal(t, "from-body", ids[1])
	assert.NotEmpty(t, ids[2])
}

func TestProcess_ClassifiesFailures(t *testing.T) {
	processor, sender := newTestProcessor(t)
	sender.On("Send", mock.Anything, mock.Anything).Return(errTemporary).Once()

	err := processor.Process(context.Background(), mailPayload(t), nil)
	assert.True(t, IsRetryable(err))

	err = processor.Process(context.Background(), []byte("not json"), nil)
	assert.Error(t, err)
	assert.False(t, IsRetryable(err))
}
