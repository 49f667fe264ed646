package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smartbudget/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserScanner struct{ mock.Mock }

func (m *mockUserScanner) Scan(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u, _ := args.Get(0).([]domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBudgetScanner struct{ mock.Mock }

func (m *mockBudgetScanner) Scan(ctx context.Context) ([]domain.BudgetEntry, error) {
	args := m.Called(ctx)
	if e, _ := args.Get(0).([]domain.BudgetEntry); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBillsScanner struct{ mock.Mock }

func (m *mockBillsScanner) Scan(ctx context.Context) ([]domain.BillsEntry, error) {
	args := m.Called(ctx)
	if e, _ := args.Get(0).([]domain.BillsEntry); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

func TestRun_UploadsDatedJSONSnapshot(t *testing.T) {
	users := &mockUserScanner{}
	budgets := &mockBudgetScanner{}
	bills := &mockBillsScanner{}
	store := &mockObjectStore{}

	users.On("Scan", mock.Anything).Return([]domain.User{{Email: "a@b.com", LoginCount: 2}}, nil)
	budgets.On("Scan", mock.Anything).Return([]domain.BudgetEntry{{Email: "a@b.com", MonthKey: "2024-01", Document: `{}`}}, nil)
	bills.On("Scan", mock.Anything).Return([]domain.BillsEntry{}, nil)

	var uploadedKey string
	var uploadedBody []byte
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/json").
		Run(func(args mock.Arguments) {
			uploadedKey = args.String(1)
			uploadedBody, _ = io.ReadAll(args.Get(2).(io.Reader))
		}).
		Return("s3://bucket/key", nil)

	svc := NewService(users, budgets, bills, store)
	require.NoError(t, svc.Run(context.Background()))

	assert.True(t, strings.HasPrefix(uploadedKey, "backups/"))
	assert.True(t, strings.HasSuffix(uploadedKey, ".json"))

	var snap snapshot
	require.NoError(t, json.Unmarshal(uploadedBody, &snap))
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Budgets, 1)
	assert.Empty(t, snap.Bills)
	assert.False(t, snap.TakenAt.IsZero())
}

func TestRun_ScanFailure_NothingUploaded(t *testing.T) {
	users := &mockUserScanner{}
	store := &mockObjectStore{}
	users.On("Scan", mock.Anything).Return(nil, errors.New("table unavailable"))

	svc := NewService(users, &mockBudgetScanner{}, &mockBillsScanner{}, store)
	err := svc.Run(context.Background())

	require.Error(t, err)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
