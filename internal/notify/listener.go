package notify

import (
	"context"
	"encoding/json"
	"time"

	"travia-admin/internal/domain"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Channel is the LISTEN/NOTIFY channel the insert trigger publishes on.
const Channel = "travia_notifications"

// Listener bridges Postgres NOTIFY payloads into the Hub and the push
// sender. Reconnection is handled by pq.Listener itself; a dropped
// connection only loses events sent while it was down, which the table
// still holds.
type Listener struct {
	pql    *pq.Listener
	hub    *Hub
	pusher *Pusher
	logger *zap.Logger
}

func NewListener(dsn string, hub *Hub, pusher *Pusher, logger *zap.Logger) *Listener {
	pql := pq.NewListener(dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("Notification listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	return &Listener{
		pql:    pql,
		hub:    hub,
		pusher: pusher,
		logger: logger,
	}
}

// Run listens until the context is cancelled. The payload is the
// inserted notifications row serialized as JSON by the trigger.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.pql.Listen(Channel); err != nil {
		return err
	}
	defer l.pql.Close()

	l.logger.Info("Notification listener started", zap.String("channel", Channel))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-l.pql.Notify:
			if event == nil {
				// reconnect marker, nothing to deliver
				continue
			}
			l.handle(ctx, event.Extra)

		case <-time.After(90 * time.Second):
			// keepalive; also forces a reconnect attempt when dead
			go l.pql.Ping()
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	var n domain.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		l.logger.Warn("Dropping malformed notification payload", zap.Error(err))
		return
	}
	if n.AgencyID == "" {
		l.logger.Warn("Dropping notification without agency", zap.String("id", n.NotificationID))
		return
	}

	l.hub.Publish(n)
	if l.pusher != nil {
		l.pusher.Send(ctx, n)
	}
}
