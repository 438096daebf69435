package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"travia-admin/internal/domain"
	"travia-admin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTripsRepo struct {
	repository.TripsRepository
	trip *domain.Trip
}

func (f *fakeTripsRepo) GetTrip(ctx context.Context, agencyID, tripID string) (*domain.Trip, error) {
	if f.trip == nil || f.trip.AgencyID != agencyID || f.trip.TripID != tripID {
		return nil, repository.ErrNotFound
	}
	return f.trip, nil
}

type fakeMeetingPointsRepo struct {
	points  []*domain.MeetingPoint
	cleared bool
}

var _ repository.MeetingPointsRepository = (*fakeMeetingPointsRepo)(nil)

func (f *fakeMeetingPointsRepo) ListMeetingPoints(ctx context.Context, tripID string) ([]*domain.MeetingPoint, error) {
	return f.points, nil
}

func (f *fakeMeetingPointsRepo) SetMeetingPointStatus(ctx context.Context, tripID, meetingPointID, status string) error {
	for _, mp := range f.points {
		if mp.MeetingPointID == meetingPointID {
			mp.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMeetingPointsRepo) SetStopOrder(ctx context.Context, meetingPointID string, order int) error {
	for _, mp := range f.points {
		if mp.MeetingPointID == meetingPointID {
			mp.StopOrder = sql.NullInt64{Int64: int64(order), Valid: true}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMeetingPointsRepo) ClearStopOrders(ctx context.Context, tripID string) error {
	f.cleared = true
	for _, mp := range f.points {
		mp.StopOrder = sql.NullInt64{}
	}
	return nil
}

func pickupAt(hour int) sql.NullTime {
	return sql.NullTime{
		Time:  time.Date(2026, 8, 30, hour, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

func newRouteFixture() (*RouteService, *fakeMeetingPointsRepo) {
	trips := &fakeTripsRepo{trip: &domain.Trip{TripID: "t1", AgencyID: "a1"}}
	points := &fakeMeetingPointsRepo{
		points: []*domain.MeetingPoint{
			{MeetingPointID: "late", TripID: "t1", Status: domain.MeetingPointConfirmed, PickupTime: pickupAt(10)},
			{MeetingPointID: "pending", TripID: "t1", Status: domain.MeetingPointPending, PickupTime: pickupAt(7)},
			{MeetingPointID: "early", TripID: "t1", Status: domain.MeetingPointConfirmed, PickupTime: pickupAt(8)},
			{MeetingPointID: "rejected", TripID: "t1", Status: domain.MeetingPointRejected, PickupTime: pickupAt(6)},
			{MeetingPointID: "mid", TripID: "t1", Status: domain.MeetingPointConfirmed, PickupTime: pickupAt(9)},
		},
	}
	return NewRouteService(trips, points, zap.NewNop()), points
}

func TestOptimizeRouteOrdersConfirmedByPickupTime(t *testing.T) {
	svc, points := newRouteFixture()

	got, err := svc.OptimizeRoute(context.Background(), "a1", "t1")
	require.NoError(t, err)
	require.Len(t, got, 3, "only confirmed points take part")
	assert.True(t, points.cleared, "stale positions must be cleared before a re-run")

	ids := []string{got[0].MeetingPointID, got[1].MeetingPointID, got[2].MeetingPointID}
	assert.Equal(t, []string{"early", "mid", "late"}, ids)
	for i, mp := range got {
		require.True(t, mp.StopOrder.Valid)
		assert.Equal(t, int64(i+1), mp.StopOrder.Int64, "stop_order is sequential from 1")
	}

	// pending and rejected points end up with no position
	for _, mp := range points.points {
		if mp.Status != domain.MeetingPointConfirmed {
			assert.False(t, mp.StopOrder.Valid)
		}
	}
}

func TestOptimizeRouteWrongAgency(t *testing.T) {
	svc, _ := newRouteFixture()
	_, err := svc.OptimizeRoute(context.Background(), "other-agency", "t1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetMeetingPointStatus(t *testing.T) {
	svc, points := newRouteFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetMeetingPointStatus(ctx, "a1", "t1", "pending", domain.MeetingPointConfirmed))
	assert.Equal(t, domain.MeetingPointConfirmed, points.points[1].Status)

	assert.Error(t, svc.SetMeetingPointStatus(ctx, "a1", "t1", "pending", "bogus"))
	assert.ErrorIs(t, svc.SetMeetingPointStatus(ctx, "a1", "t1", "missing", domain.MeetingPointRejected), repository.ErrNotFound)
}
