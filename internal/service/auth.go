package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skarbek/treasury-server-go/internal/config"
	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/repository"
	"github.com/skarbek/treasury-server-go/internal/util"
)

// Principal identifies the caller behind a validated token. For parents,
// MustChangePassword is the flag snapshot captured at issuance; it is advisory
// (display only) and the gate re-reads the directory on every protected call.
type Principal struct {
	Kind               model.PrincipalKind `json:"kind"`
	ParentID           string              `json:"parentId,omitempty"`
	MustChangePassword bool                `json:"mustChangePassword,omitempty"`
}

// AdminCredential is the single configured admin identity, injected at
// startup rather than read from a mutable global.
type AdminCredential struct {
	Username     string
	PasswordHash string
}

// AuthService issues and validates opaque bearer tokens for the two principal
// kinds. Tokens are random, HMAC-hashed with a server secret and persisted,
// so a rotation can invalidate every earlier token for the identity.
type AuthService struct {
	parentRepo        repository.ParentRepository
	adminSessionRepo  repository.AdminSessionRepository
	parentSessionRepo repository.ParentSessionRepository
	adminCredential   AdminCredential
	tokenSecret       string
}

func NewAuthService(
	parentRepo repository.ParentRepository,
	adminSessionRepo repository.AdminSessionRepository,
	parentSessionRepo repository.ParentSessionRepository,
	adminCredential AdminCredential,
	tokenSecret string,
) *AuthService {
	return &AuthService{
		parentRepo:        parentRepo,
		adminSessionRepo:  adminSessionRepo,
		parentSessionRepo: parentSessionRepo,
		adminCredential:   adminCredential,
		tokenSecret:       tokenSecret,
	}
}

// AdminLogin validates the configured admin credential and issues a token.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if s.adminCredential.PasswordHash == "" {
		return "", apperrors.Internal("Admin credential not configured")
	}

	usernameOK := util.ConstantTimeEqual(username, s.adminCredential.Username)
	passwordOK := util.CheckPasswordHash(password, s.adminCredential.PasswordHash)
	if !usernameOK || !passwordOK {
		log.Warn().Str("username", username).Msg("admin login failed")
		return "", apperrors.InvalidCredentials()
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", apperrors.Internal("Failed to generate token").WithCause(err)
	}

	_, err = s.adminSessionRepo.Create(ctx, model.CreateAdminSessionParams{
		TokenHash: util.HmacSHA256(s.tokenSecret, token),
		ExpiresAt: time.Now().Add(config.AdminSessionTTL),
	})
	if err != nil {
		return "", apperrors.Database(err)
	}

	log.Info().Msg("admin logged in")
	return token, nil
}

// ParentLogin validates a parent credential and issues a token. Login
// succeeds even when the parent still has to rotate their temporary password;
// only subsequent protected operations are blocked.
func (s *AuthService) ParentLogin(ctx context.Context, email, password string) (string, *model.Parent, error) {
	parent, err := s.parentRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.Database(err)
	}
	if parent == nil || !util.CheckPasswordHash(password, parent.PasswordHash) {
		log.Warn().Str("email", email).Msg("parent login failed")
		return "", nil, apperrors.InvalidCredentials()
	}

	token, err := s.issueParentToken(ctx, parent)
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("parentId", parent.ID).Msg("parent logged in")
	return token, parent, nil
}

// issueParentToken creates a session snapshotting the parent's current
// must_change_password flag.
func (s *AuthService) issueParentToken(ctx context.Context, parent *model.Parent) (string, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return "", apperrors.Internal("Failed to generate token").WithCause(err)
	}

	_, err = s.parentSessionRepo.Create(ctx, model.CreateParentSessionParams{
		TokenHash:          util.HmacSHA256(s.tokenSecret, token),
		ParentID:           parent.ID,
		MustChangePassword: parent.MustChangePassword,
		ExpiresAt:          time.Now().Add(config.ParentSessionTTL),
	})
	if err != nil {
		return "", apperrors.Database(err)
	}
	return token, nil
}

// ValidateAdminToken resolves a bearer token to an admin principal.
func (s *AuthService) ValidateAdminToken(ctx context.Context, token string) (*Principal, error) {
	session, err := s.adminSessionRepo.FindByTokenHash(ctx, util.HmacSHA256(s.tokenSecret, token))
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if session == nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	return &Principal{Kind: model.PrincipalAdmin}, nil
}

// ValidateParentToken resolves a bearer token to a parent principal plus the
// parent's live directory record. Callers gate on the record's current flag,
// not on the session snapshot, so a captured pre-rotation token cannot bypass
// the gate.
func (s *AuthService) ValidateParentToken(ctx context.Context, token string) (*Principal, *model.Parent, error) {
	session, err := s.parentSessionRepo.FindByTokenHash(ctx, util.HmacSHA256(s.tokenSecret, token))
	if err != nil {
		return nil, nil, apperrors.Database(err)
	}
	if session == nil {
		return nil, nil, apperrors.Unauthorized("Invalid or expired token")
	}

	parent, err := s.parentRepo.FindByID(ctx, session.ParentID)
	if err != nil {
		return nil, nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, nil, apperrors.Unauthorized("Invalid or expired token")
	}

	principal := &Principal{
		Kind:               model.PrincipalParent,
		ParentID:           parent.ID,
		MustChangePassword: session.MustChangePassword,
	}
	return principal, parent, nil
}

func (s *AuthService) AdminLogout(ctx context.Context, token string) error {
	return s.adminSessionRepo.DeleteByTokenHash(ctx, util.HmacSHA256(s.tokenSecret, token))
}

func (s *AuthService) ParentLogout(ctx context.Context, token string) error {
	return s.parentSessionRepo.DeleteByTokenHash(ctx, util.HmacSHA256(s.tokenSecret, token))
}
