package ws

import (
	"encoding/json"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/scheduler"
)

type scoreProgressEvent struct {
	Type      string                  `json:"type"`
	Event     scheduler.ProgressEvent `json:"event"`
	Timestamp string                  `json:"timestamp"`
}

// NotifyScoreProgress broadcasts one scoring-run progress event to every
// connected client. Safe on a nil hub so callers don't have to care whether
// the websocket surface is wired.
func (h *Hub) NotifyScoreProgress(evt scheduler.ProgressEvent) {
	if h == nil {
		return
	}

	b, err := json.Marshal(scoreProgressEvent{
		Type:      "score_progress",
		Event:     evt,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	h.Broadcast(b)
}
