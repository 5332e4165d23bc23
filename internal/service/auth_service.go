package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

const (
	adminRoleName = "admin"
	agentRoleName = "agent"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrSessionInvalid     = errors.New("session expired or revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrActorRequired      = errors.New("acting user required")
)

type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager
	aud      string
}

type AuthResult struct {
	Token     string
	ExpiresAt string
	User      *domain.User
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, sessions ports.SessionRepository, jwtManager *util.JWTManager, googleAud string) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		sessions: sessions,
		jwt:      jwtManager,
		aud:      googleAud,
	}
}

func (s *AuthService) RegisterWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateEmailUser(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.assignDefaultRole(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	payload, err := idtoken.Validate(ctx, idToken, s.aud)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}

	var fullName, picture *string
	if name, ok := payload.Claims["name"].(string); ok && name != "" {
		fullName = &name
	}
	if pic, ok := payload.Claims["picture"].(string); ok && pic != "" {
		picture = &pic
	}

	user, err := s.users.UpsertGoogleUser(ctx, email, fullName, picture)
	if err != nil {
		return nil, err
	}

	if err := s.assignDefaultRole(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	// Users created via Google SSO have no stored password and may set one
	// without presenting a current password.
	if len(user.PasswordHash) > 0 {
		if !util.VerifyPassword(currentPassword, user.PasswordSalt, user.PasswordHash) {
			return ErrInvalidCredentials
		}
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, salt)
}

// Authenticate validates the bearer token against both the JWT signature and
// the stored session, so revoked sessions fail even before expiry.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	if _, err := s.sessions.FindActiveSession(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeactivateSession(ctx, token)
}

func (s *AuthService) IsAdmin(ctx context.Context, user *domain.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	role, err := s.roles.GetOrCreateRole(ctx, adminRoleName, "full back office access")
	if err != nil {
		return false, err
	}
	return user.HasRole(role.ID), nil
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) DeleteUser(ctx context.Context, actor *domain.User, userID uuid.UUID) error {
	if actor == nil {
		return ErrActorRequired
	}
	if actor.ID == userID {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.Username, user.ProfileCompleted)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format("2006-01-02T15:04:05Z"),
		User:      user,
	}, nil
}

func (s *AuthService) assignDefaultRole(ctx context.Context, userID uuid.UUID) error {
	role, err := s.roles.GetOrCreateRole(ctx, agentRoleName, "sales agent")
	if err != nil {
		return err
	}
	return s.roles.AssignUserRole(ctx, userID, role.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
