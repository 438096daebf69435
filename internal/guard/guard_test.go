package guard

import (
	"testing"

	"travia-admin/internal/domain"

	"github.com/stretchr/testify/assert"
)

func adminPrincipal() *domain.Principal {
	return &domain.Principal{ID: "admin", Email: "admin@admin.com", Role: domain.RoleAdmin}
}

func agencyPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:         "a1",
		Email:      "viajes@example.com",
		Role:       domain.RoleAgency,
		AgencyID:   "a1",
		AgencyName: "Viajes Norte",
	}
}

func TestDecideWaitsWhileInitializing(t *testing.T) {
	// never redirect before the session state is known, whatever it
	// turns out to be
	cases := map[string]*domain.Principal{
		"unauthenticated": nil,
		"admin":           adminPrincipal(),
		"agency":          agencyPrincipal(),
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Wait, Decide(true, p, nil))
			assert.Equal(t, Wait, Decide(true, p, []domain.Role{domain.RoleAdmin}))
		})
	}
}

func TestDecideUnauthenticated(t *testing.T) {
	assert.Equal(t, ToLogin, Decide(false, nil, nil))
	assert.Equal(t, ToLogin, Decide(false, nil, []domain.Role{domain.RoleAgency}))
}

func TestDecideRoleMismatch(t *testing.T) {
	assert.Equal(t, ToHome, Decide(false, agencyPrincipal(), []domain.Role{domain.RoleAdmin}))
	assert.Equal(t, ToHome, Decide(false, adminPrincipal(), []domain.Role{domain.RoleAgency}))
}

func TestDecideRender(t *testing.T) {
	assert.Equal(t, Render, Decide(false, adminPrincipal(), []domain.Role{domain.RoleAdmin}))
	assert.Equal(t, Render, Decide(false, agencyPrincipal(), []domain.Role{domain.RoleAgency}))

	// empty allowed set admits any authenticated role
	assert.Equal(t, Render, Decide(false, adminPrincipal(), nil))
	assert.Equal(t, Render, Decide(false, agencyPrincipal(), nil))
}
