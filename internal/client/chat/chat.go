// Package chat streams assistant responses for the workbench over a
// websocket. The server answers a question as a start frame, a sequence of
// token frames and a terminal end (or error) frame.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/mohsen-hassani/manuscript-workbench/internal/logging"
)

// Frame types exchanged with the assistant endpoint.
const (
	FrameMessage = "message"
	FrameStart   = "start"
	FrameToken   = "token"
	FrameEnd     = "end"
	FrameError   = "error"
)

// Frame is the wire format in both directions.
type Frame struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// Client asks the assistant endpoint questions. One connection per question;
// the endpoint treats each dial as a fresh conversation turn.
type Client struct {
	endpoint string
	token    string
	timeout  time.Duration
	log      logging.Logger
}

func NewClient(endpoint string, timeout time.Duration, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Client{endpoint: endpoint, timeout: timeout, log: log}
}

// SetToken sets the bearer token presented on dial.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Ask sends prompt and invokes onToken for every streamed token until the
// server's end frame. An error frame ends the stream as a failure. The whole
// exchange runs under the client's timeout.
func (c *Client) Ask(ctx context.Context, prompt string, onToken func(string)) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, _, err := websocket.Dial(ctx, c.endpoint, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return fmt.Errorf("dialing assistant endpoint: %w", err)
	}
	defer conn.Close(websocket.StatusInternalError, "client done")

	if err := writeFrame(ctx, conn, Frame{Type: FrameMessage, Content: prompt}); err != nil {
		return fmt.Errorf("sending question: %w", err)
	}

	for {
		frame, err := readFrame(ctx, conn)
		if err != nil {
			return fmt.Errorf("reading assistant stream: %w", err)
		}

		switch frame.Type {
		case FrameStart:
			c.log.Debug(ctx, "assistant stream started")
		case FrameToken:
			onToken(frame.Content)
		case FrameEnd:
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case FrameError:
			return fmt.Errorf("assistant error: %s", frame.Content)
		default:
			c.log.Warn(ctx, "unknown assistant frame ignored", "type", frame.Type)
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

func readFrame(ctx context.Context, conn *websocket.Conn) (Frame, error) {
	var f Frame
	_, data, err := conn.Read(ctx)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("malformed frame: %w", err)
	}
	return f, nil
}
