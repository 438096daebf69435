package domain

// Role is the authorization role carried by a Principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAgency Role = "agencia"
)

// Principal is the authenticated actor for the current session.
// Serialized as the Session Record (JSON) persisted by the session store.
//
// Invariant: RoleAdmin never carries AgencyID; RoleAgency always does.
type Principal struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	AgencyName string `json:"agencyName,omitempty"`
	AgencyID   string `json:"agencyId,omitempty"`
}

// Valid reports whether the record satisfies the role/agency invariant.
// Corrupt persisted records fail this check and are discarded on rehydration.
func (p *Principal) Valid() bool {
	switch p.Role {
	case RoleAdmin:
		return p.ID != "" && p.AgencyID == ""
	case RoleAgency:
		return p.ID != "" && p.AgencyID != ""
	default:
		return false
	}
}

// HasRole reports whether the principal's role is in allowed.
// An empty allowed set means any authenticated role.
func (p *Principal) HasRole(allowed []Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if p.Role == r {
			return true
		}
	}
	return false
}
