package bills

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/smartbudget/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBillsStore struct{ mock.Mock }

func (m *mockBillsStore) Get(ctx context.Context, email string) (*domain.BillsEntry, error) {
	args := m.Called(ctx, email)
	if e, _ := args.Get(0).(*domain.BillsEntry); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBillsStore) Put(ctx context.Context, e *domain.BillsEntry) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockBillsStore) UpdateDocument(ctx context.Context, email, document string, updatedAt time.Time) error {
	return m.Called(ctx, email, document, updatedAt).Error(0)
}

// --- Load ---

func TestLoad_EmailRequired(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Load(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLoad_NoEntry_ReturnsEmptyList(t *testing.T) {
	repo := &mockBillsStore{}
	repo.On("Get", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	list, err := svc.Load(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(list))
}

func TestLoad_UndecodableDocument_DegradesToEmptyList(t *testing.T) {
	repo := &mockBillsStore{}
	repo.On("Get", mock.Anything, "a@b.com").Return(&domain.BillsEntry{
		Email:    "a@b.com",
		Document: `[{"name":"rent"`,
	}, nil)

	svc := NewService(repo)
	list, err := svc.Load(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(list))
}

func TestLoad_ReturnsStoredList_CaseInsensitive(t *testing.T) {
	repo := &mockBillsStore{}
	repo.On("Get", mock.Anything, "a@b.com").Return(&domain.BillsEntry{
		Email:    "a@b.com",
		Document: `[{"name":"rent","amount":1200}]`,
	}, nil)

	svc := NewService(repo)
	list, err := svc.Load(context.Background(), "A@B.COM")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"rent","amount":1200}]`, string(list))
}

// --- Save ---

func TestSave_EmailRequired(t *testing.T) {
	svc := NewService(nil)
	err := svc.Save(context.Background(), "", json.RawMessage(`[]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSave_FirstSave_CreatesEntry(t *testing.T) {
	repo := &mockBillsStore{}
	repo.On("Get", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	var saved *domain.BillsEntry
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.BillsEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.BillsEntry) }).
		Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Save(context.Background(), "A@B.com", json.RawMessage(`[{"name":"rent"}]`)))

	require.NotNil(t, saved)
	assert.Equal(t, "a@b.com", saved.Email)
	assert.JSONEq(t, `[{"name":"rent"}]`, saved.Document)
}

func TestSave_SecondSave_ReplacesWholesale(t *testing.T) {
	repo := &mockBillsStore{}
	repo.On("Get", mock.Anything, "a@b.com").Return(&domain.BillsEntry{
		Email:    "a@b.com",
		Document: `[{"name":"rent"}]`,
	}, nil)
	repo.On("UpdateDocument", mock.Anything, "a@b.com", `[{"name":"power"}]`, mock.Anything).Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Save(context.Background(), "a@b.com", json.RawMessage(`[{"name":"power"}]`)))

	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
