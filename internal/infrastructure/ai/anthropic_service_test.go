package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
)

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := resty.New().SetBaseURL(srv.URL).SetTimeout(5 * time.Second)
	return newAnthropicWithClient("sk-test", "claude-test", client)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestAnthropic_VisionSendsDocumentBlock(t *testing.T) {
	var req anthropicRequest
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, `{"content":[{"type":"text","text":"{\"A\":\"AB-123-CD\"}"}]}`)
	})

	out, err := svc.Vision(context.Background(), "Lis la carte grise", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, `{"A":"AB-123-CD"}`, out)

	assert.Equal(t, "claude-test", req.Model)
	require.Len(t, req.Messages, 1)
	blocks := req.Messages[0].Content
	require.Len(t, blocks, 2)
	assert.Equal(t, "document", blocks[0].Type)
	assert.Equal(t, "JVBERg==", blocks[0].Source.Data)
	assert.Equal(t, "Lis la carte grise", blocks[1].Text)
}

func TestAnthropic_ChatMapsRoles(t *testing.T) {
	var req anthropicRequest
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, `{"content":[{"type":"text","text":"Bonjour"}]}`)
	})

	out, err := svc.Chat(context.Background(), "Tu es un assistant", []ports.ChatTurn{
		{Role: "user", Content: "a"}, {Role: "assistant", Content: "b"}, {Role: "user", Content: "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)
	assert.Equal(t, "Tu es un assistant", req.System)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "assistant", req.Messages[1].Role)
}

func TestAnthropic_ErrorBody(t *testing.T) {
	var calls int32
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"bad image"}}`)
	})

	_, err := svc.Vision(context.Background(), "p", "image/png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad image")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnthropic_MissingKey(t *testing.T) {
	svc := newAnthropicWithClient("", "m", resty.New())
	_, err := svc.Chat(context.Background(), "", []ports.ChatTurn{{Role: "user", Content: "x"}})
	assert.Error(t, err)
}
