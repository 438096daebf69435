package httpapi

import (
	"net/http"
	"strings"

	"travia-admin/internal/domain"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux; the route shapes are
// simple enough that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	guard  *Guard
	logger *zap.Logger
}

func NewRouter(guard *Guard, logger *zap.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		guard:  guard,
		logger: logger,
	}
	// catch-all: the frontend treats any unknown path as its 404 view
	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	})
	return r
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

var (
	adminOnly  = []domain.Role{domain.RoleAdmin}
	agencyOnly = []domain.Role{domain.RoleAgency}
	anyRole    []domain.Role
)

// RegisterAuthRoutes login/logout/session.
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, req)
	})
	r.Handle("/auth/api/v1/logout", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Logout(w, req)
	})
	r.Handle("/auth/api/v1/session", r.guard.Protect(anyRole, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Session(w, req)
	}))
}

// RegisterAgencyAdminRoutes admin-only agency management.
func (r *Router) RegisterAgencyAdminRoutes(h *AgenciesHandler) {
	r.Handle("/admin/api/v1/agencies", r.guard.Protect(adminOnly, func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	r.Handle("/admin/api/v1/agencies/", r.guard.Protect(adminOnly, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, action := splitIDAction(req.URL.Path, "/admin/api/v1/agencies/")
		switch action {
		case "status":
			h.SetStatus(w, req, id)
		case "premium":
			h.SetPremium(w, req, id)
		case "featured":
			h.SetFeatured(w, req, id)
		default:
			writeJSON(w, http.StatusNotFound, Fail("not found"))
		}
	}))
}

// RegisterUserRoutes admin-only traveler moderation.
func (r *Router) RegisterUserRoutes(h *UsersHandler) {
	r.Handle("/admin/api/v1/users", r.guard.Protect(adminOnly, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, req)
	}))
	r.Handle("/admin/api/v1/users/", r.guard.Protect(adminOnly, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, action := splitIDAction(req.URL.Path, "/admin/api/v1/users/")
		if action != "status" {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.SetStatus(w, req, id)
	}))
}

// RegisterCategoryRoutes admin-only categories.
func (r *Router) RegisterCategoryRoutes(h *CategoriesHandler) {
	r.Handle("/admin/api/v1/categories", r.guard.Protect(adminOnly, func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

// RegisterExperienceRoutes agency catalog.
func (r *Router) RegisterExperienceRoutes(h *ExperiencesHandler) {
	r.Handle("/admin/api/v1/experiences", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	r.Handle("/admin/api/v1/experiences/", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		id, action := splitIDAction(req.URL.Path, "/admin/api/v1/experiences/")
		switch {
		case action == "" && req.Method == http.MethodGet:
			h.Get(w, req, id)
		case action == "active" && req.Method == http.MethodPost:
			h.SetActive(w, req, id)
		default:
			writeJSON(w, http.StatusNotFound, Fail("not found"))
		}
	}))
}

// RegisterGuideRoutes agency guides.
func (r *Router) RegisterGuideRoutes(h *GuidesHandler) {
	r.Handle("/admin/api/v1/guides", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	r.Handle("/admin/api/v1/guides/", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		id, action := splitIDAction(req.URL.Path, "/admin/api/v1/guides/")
		if action != "status" || req.Method != http.MethodPost {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.SetStatus(w, req, id)
	}))
}

// RegisterTripRoutes agency trips, reservations, pickup route.
func (r *Router) RegisterTripRoutes(h *TripsHandler) {
	r.Handle("/admin/api/v1/trips", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	r.Handle("/admin/api/v1/trips/", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/admin/api/v1/trips/")
		parts := strings.Split(rest, "/")
		id := parts[0]
		if id == "" {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}

		switch {
		case len(parts) == 1 && req.Method == http.MethodGet:
			h.Get(w, req, id)
		case len(parts) == 1 && req.Method == http.MethodDelete:
			h.Delete(w, req, id)
		case len(parts) == 2 && parts[1] == "meeting-points" && req.Method == http.MethodGet:
			h.ListMeetingPoints(w, req, id)
		case len(parts) == 4 && parts[1] == "meeting-points" && parts[3] == "status" && req.Method == http.MethodPost:
			h.SetMeetingPointStatus(w, req, id, parts[2])
		case len(parts) == 2 && parts[1] == "optimize-route" && req.Method == http.MethodPost:
			h.OptimizeRoute(w, req, id)
		case len(parts) == 3 && parts[1] == "reservations" && parts[2] == "export" && req.Method == http.MethodGet:
			h.ExportReservations(w, req, id)
		default:
			writeJSON(w, http.StatusNotFound, Fail("not found"))
		}
	}))
}

// RegisterDashboardRoutes analytics, any authenticated role.
func (r *Router) RegisterDashboardRoutes(h *DashboardHandler) {
	get := func(fn http.HandlerFunc) http.HandlerFunc {
		return r.guard.Protect(anyRole, func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			fn(w, req)
		})
	}
	r.Handle("/dashboard/api/v1/summary", get(h.Summary))
	r.Handle("/dashboard/api/v1/top-states", get(h.TopStates))
	r.Handle("/dashboard/api/v1/destinations", get(h.TopDestinations))
	r.Handle("/dashboard/api/v1/trend", get(h.Trend))
}

// RegisterNotifyRoutes agency realtime feed.
func (r *Router) RegisterNotifyRoutes(h *NotificationsHandler) {
	r.Handle("/notify/api/v1/notifications", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, req)
	}))
	r.Handle("/notify/api/v1/stream", r.guard.Protect(agencyOnly, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Stream(w, req)
	}))
	r.Handle("/notify/api/v1/permission", r.guard.Protect(agencyOnly, h.Permission))
}

// splitIDAction parses "{id}" or "{id}/{action}" path suffixes.
func splitIDAction(path, prefix string) (id, action string) {
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return rest, ""
}
