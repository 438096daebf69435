package notify

import (
	"context"
	"net/http"

	"travia-admin/internal/config"
	"travia-admin/internal/domain"
	"travia-admin/internal/store"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Push permission states, one flag per agency. Default means the agency
// has never been asked; a denied flag suppresses delivery entirely.
const (
	PermDefault = "default"
	PermGranted = "granted"
	PermDenied  = "denied"
)

func permKey(agencyID string) string { return "push:perm:" + agencyID }

// Pusher forwards notifications to the external push gateway, gated by
// the per-agency permission flag.
type Pusher struct {
	client *resty.Client
	kv     store.KV
	logger *zap.Logger
}

// NewPusher returns nil when push is disabled; callers treat a nil
// pusher as "feed only".
func NewPusher(cfg config.PushConfig, kv store.KV, logger *zap.Logger) *Pusher {
	if !cfg.Enabled || cfg.GatewayURL == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2)
	return &Pusher{
		client: client,
		kv:     kv,
		logger: logger,
	}
}

// Permission reads the agency's flag, defaulting when unset.
func (p *Pusher) Permission(ctx context.Context, agencyID string) string {
	v, err := p.kv.Get(ctx, permKey(agencyID))
	if err != nil {
		return PermDefault
	}
	return v
}

// SetPermission records the agency's answer to the permission prompt.
func (p *Pusher) SetPermission(ctx context.Context, agencyID, perm string) error {
	return p.kv.Set(ctx, permKey(agencyID), perm, 0)
}

// Send delivers one notification through the gateway. A default flag
// asks the gateway to prompt first and stores the answer; only a
// granted flag delivers silently on later sends.
func (p *Pusher) Send(ctx context.Context, n domain.Notification) {
	perm := p.Permission(ctx, n.AgencyID)
	if perm == PermDenied {
		return
	}

	body := map[string]any{
		"agency_id": n.AgencyID,
		"title":     n.Title,
		"body":      n.Body,
	}
	if perm == PermDefault {
		body["request_permission"] = true
	}

	var reply struct {
		Granted bool `json:"granted"`
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&reply).
		Post("/push")
	if err != nil {
		p.logger.Warn("Push delivery failed",
			zap.String("agency_id", n.AgencyID),
			zap.Error(err),
		)
		return
	}
	if resp.StatusCode() != http.StatusOK {
		p.logger.Warn("Push gateway rejected delivery",
			zap.String("agency_id", n.AgencyID),
			zap.Int("status", resp.StatusCode()),
		)
		return
	}

	if perm == PermDefault {
		next := PermDenied
		if reply.Granted {
			next = PermGranted
		}
		if err := p.SetPermission(ctx, n.AgencyID, next); err != nil {
			p.logger.Warn("Failed to record push permission",
				zap.String("agency_id", n.AgencyID),
				zap.Error(err),
			)
		}
	}
}
