package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// Subjects used by the service.
const (
	SubjectLocationCreated = "explorer.location.created"
	SubjectLocationAll     = "explorer.location.>"
	SubjectPurgeRequest    = "explorer.stale.purge"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStreams(js); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStreams(js nats.JetStreamContext) error {
	streams := []nats.StreamConfig{
		{
			Name:      "EXPLORER_LOCATIONS",
			Subjects:  []string{SubjectLocationAll},
			Retention: nats.LimitsPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "EXPLORER_PURGE",
			Subjects:  []string{"explorer.stale.>"},
			Retention: nats.WorkQueuePolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, so fall back to an update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}
	return nil
}

// PublishLocationCreated announces a newly cached location.
func (p *Publisher) PublishLocationCreated(ctx context.Context, rec *domain.LocationRecord) error {
	data, err := json.Marshal(domain.LocationEvent{
		Type:     "location.created",
		Location: *rec,
		Time:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectLocationCreated, data,
		nats.Context(ctx),
		nats.MsgId("location-"+strconv.FormatInt(rec.ID, 10)),
	)
	return err
}

// PublishPurgeRequest queues a stale purge for a location.
func (p *Publisher) PublishPurgeRequest(ctx context.Context, req *domain.PurgeRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectPurgeRequest, data, nats.Context(ctx))
	return err
}

// IsConnected reports the connection state.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("city-explorer"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
