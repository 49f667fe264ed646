package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smartbudget/api/internal/domain"
)

// Repository is the registry store the service needs.
type Repository interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type Service interface {
	// Touch records a login dispatch for email: first call creates the record,
	// later calls refresh last-login and bump the counter.
	Touch(ctx context.Context, email string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Touch(ctx context.Context, email string) error {
	email = strings.ToLower(email)
	now := time.Now().UTC()

	u, err := s.repo.Get(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return s.repo.Put(ctx, &domain.User{
			Email:        email,
			FirstLoginAt: now,
			LastLoginAt:  now,
			LoginCount:   1,
		})
	}
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, email, map[string]interface{}{
		"last_login_at": now.Format(time.RFC3339Nano),
		"login_count":   u.LoginCount + 1,
	})
}
