package tenants

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"timeitin-backend/internal/settings"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("authentication failed")
)

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Service struct {
	store    TenantStore
	secret   []byte
	tokenTTL time.Duration
	stayTTL  time.Duration
	id       IDGen
}

func NewService(db *sql.DB, secret []byte, tokenTTL, stayTTL time.Duration) *Service {
	return &Service{
		store:    NewStore(db),
		secret:   secret,
		tokenTTL: tokenTTL,
		stayTTL:  stayTTL,
		id:       ulidGen{},
	}
}

// Register creates a tenant account with its kiosk pincode and initial
// clock-in settings.
func (s *Service) Register(ctx context.Context, email, password, pincode string, clockin settings.Clockin) (string, error) {
	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrAlreadyExists
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(pincode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	id, err := s.id.New()
	if err != nil {
		return "", err
	}

	err = s.store.Create(ctx, &Tenant{
		ID:           id,
		Email:        email,
		PasswordHash: string(passHash),
		PincodeHash:  string(pinHash),
		Clockin:      clockin,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Login(ctx context.Context, email, password string, stayLoggedIn bool) (string, error) {
	t, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if t == nil || t.IsDisabled {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}
	return s.issueToken(t.ID, stayLoggedIn)
}

// Refresh issues a fresh token for an already-authenticated tenant.
func (s *Service) Refresh(ctx context.Context, tenantID string, stayLoggedIn bool) (string, error) {
	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if t == nil || t.IsDisabled {
		return "", ErrUnauthorized
	}
	return s.issueToken(t.ID, stayLoggedIn)
}

// CheckPin verifies the kiosk pincode for the tenant. The pin gates the
// admin views on a shared clock-in terminal.
func (s *Service) CheckPin(ctx context.Context, tenantID, pincode string) (bool, error) {
	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(t.PincodeHash), []byte(pincode)); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *Service) issueToken(tenantID string, stayLoggedIn bool) (string, error) {
	ttl := s.tokenTTL
	if stayLoggedIn {
		ttl = s.stayTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  tenantID,
		"stay": stayLoggedIn,
		"exp":  time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(s.secret)
}
