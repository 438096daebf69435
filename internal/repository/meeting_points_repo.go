package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// MeetingPointsRepository data access for trip pickup requests.
type MeetingPointsRepository interface {
	// ListMeetingPoints returns the trip's pickup requests with the
	// traveller account joined, oldest first.
	ListMeetingPoints(ctx context.Context, tripID string) ([]*domain.MeetingPoint, error)

	SetMeetingPointStatus(ctx context.Context, tripID, meetingPointID, status string) error

	// SetStopOrder writes the position assigned by route optimization.
	SetStopOrder(ctx context.Context, meetingPointID string, order int) error

	// ClearStopOrders resets all positions on the trip before a re-run.
	ClearStopOrders(ctx context.Context, tripID string) error
}
