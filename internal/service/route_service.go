package service

import (
	"context"
	"fmt"
	"sort"

	"travia-admin/internal/domain"
	"travia-admin/internal/repository"

	"go.uber.org/zap"
)

// RouteService pickup-request review and route optimization for a trip.
type RouteService struct {
	trips         repository.TripsRepository
	meetingPoints repository.MeetingPointsRepository
	logger        *zap.Logger
}

func NewRouteService(trips repository.TripsRepository, meetingPoints repository.MeetingPointsRepository, logger *zap.Logger) *RouteService {
	return &RouteService{
		trips:         trips,
		meetingPoints: meetingPoints,
		logger:        logger,
	}
}

// ListMeetingPoints returns the trip's pickup requests after verifying
// the trip belongs to the agency.
func (s *RouteService) ListMeetingPoints(ctx context.Context, agencyID, tripID string) ([]*domain.MeetingPoint, error) {
	if _, err := s.trips.GetTrip(ctx, agencyID, tripID); err != nil {
		return nil, err
	}
	return s.meetingPoints.ListMeetingPoints(ctx, tripID)
}

// SetMeetingPointStatus accepts or rejects one pickup request.
func (s *RouteService) SetMeetingPointStatus(ctx context.Context, agencyID, tripID, meetingPointID, status string) error {
	if status != domain.MeetingPointConfirmed && status != domain.MeetingPointRejected {
		return fmt.Errorf("invalid meeting point status %q", status)
	}
	if _, err := s.trips.GetTrip(ctx, agencyID, tripID); err != nil {
		return err
	}
	return s.meetingPoints.SetMeetingPointStatus(ctx, tripID, meetingPointID, status)
}

// OptimizeRoute orders the trip's confirmed pickups by pickup time and
// writes stop_order 1..n. Pending and rejected requests get no position;
// a re-run clears stale positions first.
func (s *RouteService) OptimizeRoute(ctx context.Context, agencyID, tripID string) ([]*domain.MeetingPoint, error) {
	if _, err := s.trips.GetTrip(ctx, agencyID, tripID); err != nil {
		return nil, err
	}

	points, err := s.meetingPoints.ListMeetingPoints(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var confirmed []*domain.MeetingPoint
	for _, mp := range points {
		if mp.Status == domain.MeetingPointConfirmed {
			confirmed = append(confirmed, mp)
		}
	}
	sort.SliceStable(confirmed, func(i, j int) bool {
		a, b := confirmed[i].PickupTime, confirmed[j].PickupTime
		switch {
		case !a.Valid:
			return false
		case !b.Valid:
			return true
		default:
			return a.Time.Before(b.Time)
		}
	})

	if err := s.meetingPoints.ClearStopOrders(ctx, tripID); err != nil {
		return nil, err
	}
	for i, mp := range confirmed {
		if err := s.meetingPoints.SetStopOrder(ctx, mp.MeetingPointID, i+1); err != nil {
			return nil, err
		}
		mp.StopOrder.Valid = true
		mp.StopOrder.Int64 = int64(i + 1)
	}

	s.logger.Info("Route optimized",
		zap.String("trip_id", tripID),
		zap.Int("stops", len(confirmed)),
	)
	return confirmed, nil
}
