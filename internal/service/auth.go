package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/events"
	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/hash"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
	"github.com/Skotchmaster/music_catalog/pkg/tokens"
)

const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo     *repo.GormRepo
	Sealer   hash.Sealer
	Secret   []byte
	TokenTTL time.Duration
	Events   events.Publisher
	Now      func() time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    string
	Email     string
	Role      models.Role
	Token     string
	ExpiresAt time.Time
}

type principalKey struct{}

// WithPrincipal stores the authenticated caller in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultTokenTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a user. The very first account becomes Admin; later ones
// get the requested role or Viewer, and may never ask for Admin.
func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	email := normalizeEmail(req.Email)
	if name, missing := firstMissing(
		field{"Email", email != ""},
		field{"Password", req.Password != ""},
	); missing {
		return invalid("Bad Request, Reason: Missing " + name)
	}

	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return conflict("Email already exists.")
	}

	total, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	role := models.RoleAdmin
	if total > 0 {
		role = models.RoleViewer
		if req.Role != "" {
			role = models.Role(req.Role)
		}
		if role != models.RoleEditor && role != models.RoleViewer {
			return invalid("Bad Request, Reason: Role should be either Editor or Viewer")
		}
	}

	sealed, err := s.Sealer.Seal(req.Password)
	if err != nil {
		return fmt.Errorf("seal password: %w", err)
	}

	user := models.User{Email: email, Password: sealed, Role: role}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if repo.IsDuplicate(err) {
			return conflict("Email already exists.")
		}
		return fmt.Errorf("create user: %w", err)
	}

	l.Info("signup_success", "user_id", user.UserID, "role", user.Role)
	publishUser(ctx, s.Events, "user_created", &user)
	return nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if name, missing := firstMissing(
		field{"Email", email != ""},
		field{"Password", req.Password != ""},
	); missing {
		return "", invalid("Bad Request, Reason: Missing " + name)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFound("User not found.")
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	ok, err := s.Sealer.Matches(user.Password, req.Password)
	if err != nil {
		return "", fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return "", unauthorized("Invalid credentials")
	}

	token, _, err := tokens.IssueAccessToken(user.UserID, string(user.Role), s.Secret, s.now(), s.ttl())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Logout blacklists the token the caller authenticated with.
func (s *AuthService) Logout(ctx context.Context, p *Principal) error {
	if err := s.Repo.BlacklistToken(ctx, p.Token, p.ExpiresAt); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// Authenticate resolves a raw bearer token to its user. The blacklist is
// consulted before the signature so a logged out token is always reported
// as such.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	if raw == "" {
		return nil, unauthorized(MsgUnauthorized)
	}

	listed, err := s.Repo.IsBlacklisted(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if listed {
		return nil, unauthorized(MsgInvalidToken)
	}

	claims, err := tokens.AccessClaimsFromToken(raw, s.Secret)
	if err != nil || claims.Subject == "" {
		return nil, unauthorized(MsgMalformedToken)
	}

	user, err := s.Repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized(MsgUnauthorized)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	p := &Principal{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		Token:  raw,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

func publishUser(ctx context.Context, pub events.Publisher, typ string, u *models.User) {
	notifier{Events: pub}.publish(ctx, events.TopicUsers, events.Event{
		Type: typ,
		ID:   u.UserID,
		Name: u.Email,
	})
}
