package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
)

// RegisterInput is the proposed state for a new admin account.
type RegisterInput struct {
	Email    string
	Name     string
	Role     string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Claims is the JWT payload issued on login.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// UserService handles admin accounts and authentication.
type UserService struct {
	DB        *gorm.DB
	Audit     *AuditRecorder
	JWTSecret []byte
	TokenTTL  time.Duration
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, audit *AuditRecorder, secret []byte, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &UserService{DB: db, Audit: audit, JWTSecret: secret, TokenTTL: ttl}
}

const minPasswordLen = 8

// Register creates a new admin account. When no actor is supplied the
// REGISTER entry is attributed to the new account itself, which covers the
// self-service bootstrap path.
func (s *UserService) Register(ctx context.Context, in RegisterInput, actor *domain.Actor) (Outcome[*domain.User], error) {
	var out Outcome[*domain.User]

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return out, ErrInvalidRegistration
	}
	if strings.TrimSpace(in.Name) == "" || len(in.Password) < minPasswordLen {
		return out, ErrInvalidRegistration
	}

	n, err := repo.CountUsersByEmail(ctx, s.DB, email)
	if err != nil {
		return out, err
	}
	if n > 0 {
		return out, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return out, err
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "staff"
	}
	u := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		return out, err
	}
	out.Value = u

	if actor == nil {
		actor = &domain.Actor{Email: u.Email, Role: u.Role}
	}
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionRegister,
		"Registered account "+u.Email+" ("+u.Role+")")
	return out, nil
}

// Login verifies the password and issues a signed session token. A failed
// attempt returns ErrInvalidCredentials without writing an audit entry, so
// the trail never records which emails exist.
func (s *UserService) Login(ctx context.Context, email, password string) (Outcome[*Session], error) {
	var out Outcome[*Session]

	email = strings.ToLower(strings.TrimSpace(email))
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return out, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	exp := now.Add(s.TokenTTL)
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return out, err
	}
	out.Value = &Session{Token: token, ExpiresAt: exp, User: u}

	actor := &domain.Actor{Email: u.Email, Role: u.Role}
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionLogin, u.Email+" logged in")
	return out, nil
}

// Logout records the end of a session. Tokens are stateless, so this only
// appends the audit entry.
func (s *UserService) Logout(ctx context.Context, actor *domain.Actor) (Outcome[struct{}], error) {
	var out Outcome[struct{}]
	if actor == nil {
		return out, ErrInvalidCredentials
	}
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionLogout, actor.Email+" logged out")
	return out, nil
}

// ParseToken validates a session token and returns the actor it encodes.
func (s *UserService) ParseToken(token string) (*domain.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &domain.Actor{Email: claims.Email, Role: claims.Role}, nil
}

// ListPage returns a page of admin accounts.
func (s *UserService) ListPage(ctx context.Context, p repo.ListParams) ([]domain.User, int64, error) {
	return repo.ListUsersPage(ctx, s.DB, p)
}
