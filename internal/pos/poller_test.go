package pos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pollCount(f *fakeOrderAPI) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

func TestPollingRefreshesOnInterval(t *testing.T) {
	client := &fakeOrderAPI{active: openOrder()}
	w := New(client, nil, 10*time.Millisecond)
	defer w.Close()

	w.SelectTable(context.Background(), "t1")
	initial := pollCount(client)

	assert.Eventually(t, func() bool {
		return pollCount(client) > initial+2
	}, time.Second, 5*time.Millisecond, "ticker should keep refreshing")
}

func TestPollingStopsOnClose(t *testing.T) {
	client := &fakeOrderAPI{active: openOrder()}
	w := New(client, nil, 10*time.Millisecond)

	w.SelectTable(context.Background(), "t1")
	w.Close()

	settled := pollCount(client)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, pollCount(client), settled+1, "no further polling after Close")
}

func TestPollingStopsOnDeselect(t *testing.T) {
	client := &fakeOrderAPI{active: openOrder()}
	w := New(client, nil, 10*time.Millisecond)
	defer w.Close()

	w.SelectTable(context.Background(), "t1")
	w.SelectTable(context.Background(), "")

	settled := pollCount(client)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, pollCount(client), settled+1, "no further polling after deselect")
}
