package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedServer accepts one websocket, reads the question and replies with
// the given frames.
func scriptedServer(t *testing.T, frames []Frame, onQuestion func(Frame)) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		ctx := r.Context()

		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var q Frame
		if err := json.Unmarshal(data, &q); err != nil {
			return
		}
		if onQuestion != nil {
			onQuestion(q)
		}

		for _, f := range frames {
			payload, _ := json.Marshal(f)
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestAsk_StreamsTokensUntilEnd(t *testing.T) {
	questions := make(chan Frame, 1)
	url := scriptedServer(t, []Frame{
		{Type: FrameStart},
		{Type: FrameToken, Content: "Once "},
		{Type: FrameToken, Content: "upon "},
		{Type: FrameToken, Content: "a time"},
		{Type: FrameEnd},
	}, func(q Frame) { questions <- q })

	c := NewClient(url, 5*time.Second, nil)
	var got strings.Builder
	err := c.Ask(context.Background(), "How do I open a chapter?", func(tok string) {
		got.WriteString(tok)
	})

	require.NoError(t, err)
	assert.Equal(t, "Once upon a time", got.String())
	question := <-questions
	assert.Equal(t, FrameMessage, question.Type)
	assert.Equal(t, "How do I open a chapter?", question.Content)
}

func TestAsk_ErrorFrameIsTerminal(t *testing.T) {
	url := scriptedServer(t, []Frame{
		{Type: FrameStart},
		{Type: FrameToken, Content: "partial"},
		{Type: FrameError, Content: "model overloaded"},
	}, nil)

	c := NewClient(url, 5*time.Second, nil)
	var tokens []string
	err := c.Ask(context.Background(), "hi", func(tok string) { tokens = append(tokens, tok) })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
	assert.Equal(t, []string{"partial"}, tokens)
}

func TestAsk_TimeoutWhenServerStalls(t *testing.T) {
	// end frame never arrives
	url := scriptedServer(t, []Frame{{Type: FrameStart}}, nil)

	c := NewClient(url, 200*time.Millisecond, nil)
	err := c.Ask(context.Background(), "hi", func(string) {})
	require.Error(t, err)
}

func TestAsk_DialFailure(t *testing.T) {
	c := NewClient("ws://127.0.0.1:1/chat", 500*time.Millisecond, nil)
	err := c.Ask(context.Background(), "hi", func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialing assistant endpoint")
}
