package bills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartbudget/api/internal/domain"
)

// emptyList is the degraded default when no bills exist or decoding fails.
var emptyList = json.RawMessage("[]")

// Repository is the bills store the service needs.
type Repository interface {
	Get(ctx context.Context, email string) (*domain.BillsEntry, error)
	Put(ctx context.Context, e *domain.BillsEntry) error
	UpdateDocument(ctx context.Context, email, document string, updatedAt time.Time) error
}

type Service interface {
	// Load returns the bills list for email, or an empty list when there is
	// none or the stored document is undecodable.
	Load(ctx context.Context, email string) (json.RawMessage, error)
	// Save replaces the bills list wholesale, creating the entry on first save.
	Save(ctx context.Context, email string, bills json.RawMessage) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Load(ctx context.Context, email string) (json.RawMessage, error) {
	if email == "" {
		return nil, fmt.Errorf("email required: %w", domain.ErrInvalidInput)
	}
	e, err := s.repo.Get(ctx, strings.ToLower(email))
	if errors.Is(err, domain.ErrNotFound) {
		return emptyList, nil
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(e.Document)) {
		slog.Warn("undecodable bills document, returning empty list", "email", e.Email)
		return emptyList, nil
	}
	return json.RawMessage(e.Document), nil
}

func (s *service) Save(ctx context.Context, email string, bills json.RawMessage) error {
	if email == "" {
		return fmt.Errorf("email required: %w", domain.ErrInvalidInput)
	}
	email = strings.ToLower(email)
	if len(bills) == 0 {
		bills = emptyList
	}
	now := time.Now().UTC()

	_, err := s.repo.Get(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.repo.Put(ctx, &domain.BillsEntry{
			Email:     email,
			Document:  string(bills),
			UpdatedAt: now,
		})
	case err != nil:
		return err
	default:
		return s.repo.UpdateDocument(ctx, email, string(bills), now)
	}
}
