package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/smartbudget/api/internal/domain"
	"github.com/smartbudget/api/internal/pkg/id"
)

// UserScanner, BudgetScanner and BillsScanner are the full-table reads the
// snapshot needs.
type UserScanner interface {
	Scan(ctx context.Context) ([]domain.User, error)
}

type BudgetScanner interface {
	Scan(ctx context.Context) ([]domain.BudgetEntry, error)
}

type BillsScanner interface {
	Scan(ctx context.Context) ([]domain.BillsEntry, error)
}

// ObjectStore receives the rendered snapshot.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// snapshot is the JSON document written to the object store.
type snapshot struct {
	TakenAt time.Time            `json:"taken_at"`
	Users   []domain.User        `json:"users"`
	Budgets []domain.BudgetEntry `json:"budgets"`
	Bills   []domain.BillsEntry  `json:"bills"`
}

type Service interface {
	// Run exports all user, budget and bills data as one JSON object under a
	// date-prefixed, time-sortable key.
	Run(ctx context.Context) error
}

type service struct {
	users   UserScanner
	budgets BudgetScanner
	bills   BillsScanner
	store   ObjectStore
}

func NewService(users UserScanner, budgets BudgetScanner, bills BillsScanner, store ObjectStore) Service {
	return &service{users: users, budgets: budgets, bills: bills, store: store}
}

func (s *service) Run(ctx context.Context) error {
	users, err := s.users.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan users: %w", err)
	}
	budgets, err := s.budgets.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan budgets: %w", err)
	}
	bills, err := s.bills.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan bills: %w", err)
	}

	now := time.Now().UTC()
	b, err := json.Marshal(snapshot{TakenAt: now, Users: users, Budgets: budgets, Bills: bills})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("backups/%s/%s.json", now.Format("2006-01-02"), id.New())
	url, err := s.store.Upload(ctx, key, bytes.NewReader(b), "application/json")
	if err != nil {
		return err
	}
	slog.Info("snapshot uploaded", "url", url, "users", len(users), "budgets", len(budgets), "bills", len(bills))
	return nil
}
