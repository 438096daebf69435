package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"travia-admin/internal/domain"

	"github.com/google/uuid"
)

// MemoryAgenciesRepository in-memory agencies repo for unit tests and
// dev runs without a database.
type MemoryAgenciesRepository struct {
	mu       sync.RWMutex
	agencies map[string]*domain.Agency
}

func NewMemoryAgenciesRepository() *MemoryAgenciesRepository {
	return &MemoryAgenciesRepository{agencies: map[string]*domain.Agency{}}
}

var _ AgenciesRepository = (*MemoryAgenciesRepository)(nil)

func (r *MemoryAgenciesRepository) GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agencies[agencyID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryAgenciesRepository) GetAgencyByEmail(ctx context.Context, email string) (*domain.Agency, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.agencies {
		if strings.ToLower(a.Email) == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryAgenciesRepository) ListAgencies(ctx context.Context, filters AgencyFilters, page, size int) ([]*domain.Agency, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	r.mu.RLock()
	var all []*domain.Agency
	for _, a := range r.agencies {
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.Search != "" {
			s := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(a.Name), s) &&
				!strings.Contains(strings.ToLower(a.Email), s) {
				continue
			}
		}
		cp := *a
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Time.After(all[j].CreatedAt.Time)
	})

	total := len(all)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *MemoryAgenciesRepository) CreateAgency(ctx context.Context, agency *domain.Agency) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *agency
	if cp.AgencyID == "" {
		cp.AgencyID = uuid.NewString()
	}
	cp.Email = strings.ToLower(cp.Email)
	r.agencies[cp.AgencyID] = &cp
	return cp.AgencyID, nil
}

func (r *MemoryAgenciesRepository) SetAgencyStatus(ctx context.Context, agencyID, status string) error {
	return r.update(agencyID, func(a *domain.Agency) { a.Status = status })
}

func (r *MemoryAgenciesRepository) SetAgencyPremium(ctx context.Context, agencyID string, premium bool) error {
	return r.update(agencyID, func(a *domain.Agency) { a.IsPremium = premium })
}

func (r *MemoryAgenciesRepository) SetAgencyFeatured(ctx context.Context, agencyID string, featured bool) error {
	return r.update(agencyID, func(a *domain.Agency) { a.IsFeatured = featured })
}

func (r *MemoryAgenciesRepository) update(agencyID string, fn func(*domain.Agency)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agencies[agencyID]
	if !ok {
		return ErrNotFound
	}
	fn(a)
	return nil
}
