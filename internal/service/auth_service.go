package service

import (
	"context"
	"errors"
	"strings"

	"travia-admin/internal/config"
	"travia-admin/internal/domain"
	"travia-admin/internal/repository"
	"travia-admin/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login failure classes. The user-facing message (Spanish, the product
// locale) deliberately says less than the audit log: unknown email and
// wrong password collapse into one message so the form cannot be used
// to probe which agencies exist.
var (
	ErrInvalidCredentials = errors.New("Credenciales incorrectas")
	ErrAgencyInactive     = errors.New("La agencia no está activa")
	ErrServer             = errors.New("Error del servidor")
)

// LoginResult what a successful login hands back to the transport layer.
type LoginResult struct {
	Principal *domain.Principal
	SessionID string
	Token     string
}

// credentialVerifier checks one credential source. It returns
// (nil, nil) when the source does not claim the email, letting the
// next verifier in the chain try.
type credentialVerifier func(ctx context.Context, email, password string) (*domain.Principal, error)

// AuthService owns the login flow: verifier chain, session persistence,
// token issuance, audit logging.
type AuthService struct {
	sessions  *session.Store
	verifiers []credentialVerifier
	logger    *zap.Logger
}

func NewAuthService(sessions *session.Store, agencies repository.AgenciesRepository, auth config.AuthConfig, logger *zap.Logger) *AuthService {
	s := &AuthService{
		sessions: sessions,
		logger:   logger,
	}
	// order matters: the reserved admin literal wins over any agency
	// row that registered the same address
	s.verifiers = []credentialVerifier{
		adminVerifier(auth),
		agencyVerifier(agencies),
	}
	return s
}

// adminVerifier matches the reserved platform-admin credential pair.
// The match is exact: only the literal address names the admin, any
// other casing falls through to the agency table.
func adminVerifier(auth config.AuthConfig) credentialVerifier {
	return func(_ context.Context, email, password string) (*domain.Principal, error) {
		if email != auth.AdminEmail {
			return nil, nil
		}
		if password != auth.AdminPassword {
			return nil, ErrInvalidCredentials
		}
		return &domain.Principal{
			ID:    "admin",
			Email: auth.AdminEmail,
			Role:  domain.RoleAdmin,
		}, nil
	}
}

// agencyVerifier matches agency rows by email, case-insensitively.
func agencyVerifier(agencies repository.AgenciesRepository) credentialVerifier {
	return func(ctx context.Context, email, password string) (*domain.Principal, error) {
		agency, err := agencies.GetAgencyByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}

		if err := bcrypt.CompareHashAndPassword(agency.PasswordHash, []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		if agency.Status != domain.AgencyStatusActive {
			return nil, ErrAgencyInactive
		}

		return &domain.Principal{
			ID:         agency.AgencyID,
			Email:      agency.Email,
			Role:       domain.RoleAgency,
			AgencyID:   agency.AgencyID,
			AgencyName: agency.Name,
		}, nil
	}
}

// Login runs the verifier chain and, on success, persists the Session
// Record and issues the access token. Every failure is audit-logged with
// its real reason even when the caller sees a merged message.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	for _, verify := range s.verifiers {
		p, err := verify(ctx, email, password)
		if err != nil {
			s.auditFailure(email, clientIP, err)
			if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrAgencyInactive) {
				return nil, err
			}
			return nil, ErrServer
		}
		if p == nil {
			continue
		}

		sid, err := s.sessions.Persist(ctx, p)
		if err != nil {
			s.logger.Error("Failed to persist session",
				zap.String("email", email),
				zap.Error(err),
			)
			return nil, ErrServer
		}
		token, err := s.sessions.IssueToken(sid, p)
		if err != nil {
			s.logger.Error("Failed to issue token",
				zap.String("email", email),
				zap.Error(err),
			)
			return nil, ErrServer
		}

		s.logger.Info("Login succeeded",
			zap.String("email", email),
			zap.String("role", string(p.Role)),
			zap.String("client_ip", clientIP),
		)
		return &LoginResult{Principal: p, SessionID: sid, Token: token}, nil
	}

	// no verifier claimed the email
	s.auditFailure(email, clientIP, errors.New("unknown email"))
	return nil, ErrInvalidCredentials
}

// Logout deletes the Session Record; safe to call on a dead session.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Logout(ctx, sid)
}

func (s *AuthService) auditFailure(email, clientIP string, reason error) {
	s.logger.Warn("Login failed",
		zap.String("email", email),
		zap.String("client_ip", clientIP),
		zap.String("reason", reason.Error()),
	)
}
