package pos

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// OrderEvent is one message from the backend's order feed.
type OrderEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

const (
	EventOrderUpdated = "order.updated"

	liveReadLimit    = 4096
	liveRedialDelay  = 5 * time.Second
	livePongInterval = 60 * time.Second
)

// LiveFeed pushes order changes to the workflow ahead of the next poll
// tick. It is an accelerator only: polling remains the guaranteed path, so
// connection failures just mean falling back to the 10s interval.
type LiveFeed struct {
	url      string
	token    func() string
	workflow *Workflow
}

// NewLiveFeed creates a feed against the backend's websocket endpoint.
// token is consulted on every (re)dial so a re-login picks up the new one.
func NewLiveFeed(url string, token func() string, workflow *Workflow) *LiveFeed {
	return &LiveFeed{url: url, token: token, workflow: workflow}
}

// Run connects and processes events until ctx is done, redialing after
// connection loss.
func (f *LiveFeed) Run(ctx context.Context) {
	for {
		if err := f.listen(ctx); err != nil && ctx.Err() == nil {
			log.Printf("live feed disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(liveRedialDelay):
		}
	}
}

func (f *LiveFeed) listen(ctx context.Context) error {
	url := f.url
	if tok := f.token(); tok != "" {
		url += "?token=" + tok
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	conn.SetReadLimit(liveReadLimit)
	for {
		conn.SetReadDeadline(time.Now().Add(livePongInterval))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var event OrderEvent
		if err := json.Unmarshal(data, &event); err != nil {
			continue
		}
		f.handle(ctx, event)
	}
}

func (f *LiveFeed) handle(ctx context.Context, event OrderEvent) {
	if event.Type != EventOrderUpdated {
		return
	}
	var payload struct {
		TableID string `json:"tableId"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return
	}
	if payload.TableID != "" && payload.TableID == f.workflow.TableID() {
		f.workflow.Refresh(ctx)
	}
}
