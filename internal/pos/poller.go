package pos

import (
	"context"
	"time"
)

// startPolling launches the background refresh loop for the selected
// table. The loop ends when the workflow context is done, the table is
// deselected, or SelectTable/Close cancels it. Ticks call Refresh, which
// already guarantees that a newer fetch supersedes an older one, so ticks
// never queue behind a slow request.
func (w *Workflow) startPolling(ctx context.Context) {
	if w.pollInterval <= 0 {
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	if w.stopPoll != nil {
		w.stopPoll()
	}
	w.stopPoll = cancel
	w.mu.Unlock()

	go func() {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				if w.TableID() == "" {
					return
				}
				w.Refresh(pollCtx)
			}
		}
	}()
}
