package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/cityexplorer/internal/adapters/nats"
	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/pkg/metrics"
)

// wsMessage is sent by clients to narrow the relayed events.
type wsMessage struct {
	Action      string `json:"action"`       // "watch" | "unwatch"
	SearchQuery string `json:"search_query"` // "" = every location
}

// WebSocketHandler relays location events from NATS to connected clients.
// Clients receive every event by default; {"action":"watch","search_query":"seattle"}
// restricts the stream to one query and {"action":"unwatch"} lifts the filter.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		var filter string

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		sub, err := nc.Subscribe(natsadapter.SubjectLocationAll, func(msg *nats.Msg) {
			var ev domain.LocationEvent
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				return
			}
			mu.Lock()
			want := filter
			mu.Unlock()
			if want != "" && ev.Location.SearchQuery != want {
				return
			}
			_ = writeJSON(ev)
		})
		if err != nil {
			slog.Error("ws subscribe failed", "remote", remoteAddr, "error", err)
			return
		}
		defer func() { _ = sub.Unsubscribe() }()

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.Action {
			case "watch":
				mu.Lock()
				filter = m.SearchQuery
				mu.Unlock()
				_ = writeJSON(map[string]string{"status": "watching", "search_query": m.SearchQuery})
			case "unwatch":
				mu.Lock()
				filter = ""
				mu.Unlock()
				_ = writeJSON(map[string]string{"status": "watching", "search_query": ""})
			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
