package chatgateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/chatgateway"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

func TestClient_Send(t *testing.T) {
	var got chatgateway.SendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := chatgateway.NewClient(srv.URL+"/", time.Second, logger.NewNop())
	require.NoError(t, c.Send(context.Background(), 999, "📣 Новая запись!"))

	assert.Equal(t, int64(999), got.ChatID)
	assert.Equal(t, "📣 Новая запись!", got.Text)
}

func TestClient_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unknown chat", status: http.StatusNotFound, wantErr: chatgateway.ErrChatNotFound},
		{name: "gateway failure", status: http.StatusBadGateway, body: `{"code":502,"message":"upstream down"}`, wantErr: chatgateway.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := chatgateway.NewClient(srv.URL, time.Second, logger.NewNop()).Send(context.Background(), 1, "hi")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := chatgateway.NewClient(url, time.Second, logger.NewNop()).Send(context.Background(), 1, "hi")
		assert.ErrorIs(t, err, chatgateway.ErrInternal)
	})
}
