package service

import (
	"context"

	"travia-admin/internal/domain"
	"travia-admin/internal/repository"
)

// DashboardService analytics behind the landing view. Admin sees the
// whole platform; an agency principal only its own rows.
type DashboardService struct {
	dashboard repository.DashboardRepository
}

func NewDashboardService(dashboard repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

// scope returns the agency filter for the principal: empty for admin,
// the agency id otherwise.
func scope(p *domain.Principal) string {
	if p.Role == domain.RoleAdmin {
		return ""
	}
	return p.AgencyID
}

func (s *DashboardService) Summary(ctx context.Context, p *domain.Principal) (*repository.DashboardSummary, error) {
	return s.dashboard.GetSummary(ctx, scope(p))
}

func (s *DashboardService) TopStates(ctx context.Context, limit int) ([]repository.StateCount, error) {
	return s.dashboard.TopStates(ctx, limit)
}

func (s *DashboardService) TopDestinations(ctx context.Context, p *domain.Principal, limit int) ([]repository.DestinationCount, error) {
	return s.dashboard.TopDestinations(ctx, scope(p), limit)
}

func (s *DashboardService) ReservationTrend(ctx context.Context, p *domain.Principal, months int) ([]repository.TrendPoint, error) {
	return s.dashboard.ReservationTrend(ctx, scope(p), months)
}
