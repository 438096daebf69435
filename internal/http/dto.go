package httpapi

import (
	"database/sql"
	"encoding/json"
	"time"

	"travia-admin/internal/domain"
	"travia-admin/internal/geo"
)

// JSON views of the domain rows. Null columns flatten to nil so the
// frontend gets plain values instead of sql.Null* wrappers.

func nullString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func nullInt(v sql.NullInt64) any {
	if !v.Valid {
		return nil
	}
	return v.Int64
}

func nullTime(v sql.NullTime) any {
	if !v.Valid {
		return nil
	}
	return v.Time.Format(time.RFC3339)
}

func rawJSON(v json.RawMessage) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// pointView decodes a stored GeoJSON location into {lng, lat}.
func pointView(raw json.RawMessage) any {
	p := geo.ParsePoint(raw)
	if p == nil {
		return nil
	}
	return p
}

func agencyView(a *domain.Agency) map[string]any {
	return map[string]any{
		"id":           a.AgencyID,
		"name":         a.Name,
		"email":        a.Email,
		"description":  nullString(a.Description),
		"logo_url":     nullString(a.LogoURL),
		"state":        nullString(a.State),
		"states":       []string(a.States),
		"rating":       nullFloat(a.Rating),
		"review_count": nullInt(a.ReviewCount),
		"is_premium":   a.IsPremium,
		"is_featured":  a.IsFeatured,
		"status":       a.Status,
		"social":       rawJSON(a.Social),
		"created_at":   nullTime(a.CreatedAt),
	}
}

func userView(u *domain.User) map[string]any {
	return map[string]any{
		"id":                 u.UserID,
		"email":              u.Email,
		"full_name":          u.FullName,
		"avatar_url":         nullString(u.AvatarURL),
		"state":              nullString(u.State),
		"age":                nullString(u.Age),
		"role":               u.Role,
		"status":             u.Status,
		"reservations_count": u.ReservationsCount,
		"created_at":         nullTime(u.CreatedAt),
	}
}

func categoryView(c *domain.Category) map[string]any {
	return map[string]any{
		"id":         c.CategoryID,
		"name":       c.Name,
		"created_at": nullTime(c.CreatedAt),
	}
}

func experienceView(e *domain.Experience) map[string]any {
	return map[string]any{
		"id":                   e.ExperienceID,
		"agency_id":            e.AgencyID,
		"title":                e.Title,
		"description":          nullString(e.Description),
		"origin":               nullString(e.Origin),
		"destination":          nullString(e.Destination),
		"origin_location":      pointView(e.OriginLocation),
		"destination_location": pointView(e.DestinationLocation),
		"duration":             nullString(e.Duration),
		"difficulty":           e.Difficulty,
		"image_url":            nullString(e.ImageURL),
		"active":               e.Active,
		"categories":           e.Categories,
		"created_at":           nullTime(e.CreatedAt),
	}
}

func guideView(g *domain.Guide) map[string]any {
	return map[string]any{
		"id":         g.GuideID,
		"agency_id":  g.AgencyID,
		"first_name": g.FirstName,
		"last_name":  nullString(g.LastName),
		"vat":        nullString(g.VAT),
		"email":      nullString(g.Email),
		"status":     g.Status,
		"created_at": nullTime(g.CreatedAt),
	}
}

func tripView(t *domain.Trip) map[string]any {
	v := map[string]any{
		"id":              t.TripID,
		"agency_id":       t.AgencyID,
		"experience_id":   nullString(t.ExperienceID),
		"guide_id":        nullString(t.GuideID),
		"start_date":      nullTime(t.StartDate),
		"end_date":        nullTime(t.EndDate),
		"price":           nullFloat(t.Price),
		"seats_available": nullInt(t.SeatsAvailable),
		"image_url":       nullString(t.ImageURL),
		"is_featured":     t.IsFeatured,
		"agency_rating":   nullFloat(t.AgencyRating),
		"created_at":      nullTime(t.CreatedAt),
	}
	if t.Experience != nil {
		v["experience"] = experienceView(t.Experience)
	}
	if t.Guide != nil {
		v["guide"] = guideView(t.Guide)
	}
	return v
}

func reservationView(res *domain.Reservation) map[string]any {
	v := map[string]any{
		"id":                  res.ReservationID,
		"trip_id":             res.TripID,
		"user_id":             res.UserID,
		"total_price":         res.TotalPrice,
		"payment_method":      nullString(res.PaymentMethod),
		"payment_reference":   nullString(res.PaymentReference),
		"payment_status":      res.PaymentStatus,
		"partial_payment":     res.PartialPayment,
		"partial_paid_amount": nullFloat(res.PartialPaidAmount),
		"created_at":          nullTime(res.CreatedAt),
	}
	if res.User != nil {
		v["user"] = userView(res.User)
	}
	return v
}

func meetingPointView(mp *domain.MeetingPoint) map[string]any {
	v := map[string]any{
		"id":           mp.MeetingPointID,
		"trip_id":      mp.TripID,
		"traveller_id": mp.TravellerID,
		"location":     pointView(mp.Location),
		"pickup_time":  nullTime(mp.PickupTime),
		"stop_order":   nullInt(mp.StopOrder),
		"status":       mp.Status,
		"created_at":   nullTime(mp.CreatedAt),
	}
	if mp.Traveller != nil {
		v["traveller"] = userView(mp.Traveller)
	}
	return v
}

// pageView wraps a paginated list the way the frontend's tables expect.
func pageView(items []map[string]any, total, page, size int) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	}
}
