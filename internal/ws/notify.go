package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent tells subscribers which row of which table changed, so they
// can re-query just the affected view instead of everything.
type ChangeEvent struct {
	Type      string `json:"type"`
	Table     string `json:"table"`
	RowID     string `json:"row_id"`
	Op        string `json:"op"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyChanged publishes a change event to every connected client. A nil
// default hub (tests, ws disabled) makes this a no-op.
func NotifyChanged(table string, rowID string, op string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if table == "" || rowID == "" {
		return
	}

	evt := ChangeEvent{
		Type:      "row_changed",
		Table:     table,
		RowID:     rowID,
		Op:        op,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
