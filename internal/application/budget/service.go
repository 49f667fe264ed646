package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartbudget/api/internal/domain"
	"github.com/smartbudget/api/internal/pkg/validate"
)

// Outcomes reported by SaveMonth.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
)

// Repository is the budget store the service needs.
type Repository interface {
	Get(ctx context.Context, email, monthKey string) (*domain.BudgetEntry, error)
	Put(ctx context.Context, e *domain.BudgetEntry) error
	UpdateDocument(ctx context.Context, email, monthKey, document string, updatedAt time.Time) error
	ListByEmail(ctx context.Context, email string) ([]domain.BudgetEntry, error)
}

// SaveMonthRequest carries one month's budget document for upsert.
type SaveMonthRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	MonthKey string          `json:"key" validate:"required"`
	Data     json.RawMessage `json:"data" validate:"required"`
}

type Service interface {
	// LoadAll returns every stored month for email, keyed by month key.
	// Undecodable documents are skipped, an empty store yields an empty map.
	LoadAll(ctx context.Context, email string) (map[string]json.RawMessage, error)
	// SaveMonth upserts the document for (email, month key) and reports
	// whether the entry was created or updated.
	SaveMonth(ctx context.Context, req SaveMonthRequest) (string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LoadAll(ctx context.Context, email string) (map[string]json.RawMessage, error) {
	if email == "" {
		return nil, fmt.Errorf("email required: %w", domain.ErrInvalidInput)
	}
	entries, err := s.repo.ListByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	months := make(map[string]json.RawMessage, len(entries))
	for _, e := range entries {
		if !json.Valid([]byte(e.Document)) {
			slog.Warn("skipping undecodable budget document", "email", e.Email, "month_key", e.MonthKey)
			continue
		}
		months[e.MonthKey] = json.RawMessage(e.Document)
	}
	return months, nil
}

func (s *service) SaveMonth(ctx context.Context, req SaveMonthRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("missing fields: %w", domain.ErrInvalidInput)
	}
	email := strings.ToLower(req.Email)
	now := time.Now().UTC()

	_, err := s.repo.Get(ctx, email, req.MonthKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		e := &domain.BudgetEntry{
			Email:     email,
			MonthKey:  req.MonthKey,
			Document:  string(req.Data),
			UpdatedAt: now,
		}
		if err := s.repo.Put(ctx, e); err != nil {
			return "", err
		}
		return OutcomeCreated, nil
	case err != nil:
		return "", err
	default:
		if err := s.repo.UpdateDocument(ctx, email, req.MonthKey, string(req.Data), now); err != nil {
			return "", err
		}
		return OutcomeUpdated, nil
	}
}
