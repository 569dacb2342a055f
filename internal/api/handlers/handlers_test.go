package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pokerhub/pokerhub-backend/internal/api"
	"github.com/pokerhub/pokerhub-backend/internal/config"
	"github.com/pokerhub/pokerhub-backend/internal/identity"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
	"github.com/pokerhub/pokerhub-backend/internal/services"
	"github.com/pokerhub/pokerhub-backend/internal/worker"
)

const testSecret = "handler-test-secret"

// ---- fakes ----

type fakeUsers struct {
	mu       sync.Mutex
	users    map[string]models.User
	getCalls int
	failGet  bool
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: map[string]models.User{}} }

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.failGet {
		return models.User{}, errors.New("storage down")
	}
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) CreateIfAbsent(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.users[u.ID]; ok {
		return existing, nil
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeCurrencies struct {
	mu    sync.Mutex
	items map[string]models.Currency
}

func newFakeCurrencies() *fakeCurrencies { return &fakeCurrencies{items: map[string]models.Currency{}} }

func (f *fakeCurrencies) Create(_ context.Context, c models.Currency) (models.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCurrencies) GetByID(_ context.Context, id string) (models.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return models.Currency{}, repo.ErrNotFound
	}
	return c, nil
}

func (f *fakeCurrencies) List(_ context.Context) ([]models.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Currency
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCurrencies) ListActive(_ context.Context) ([]models.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Currency
	for _, c := range f.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCurrencies) Update(_ context.Context, id string, p repo.CurrencyPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Symbol != nil {
		c.Symbol = *p.Symbol
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	c.UpdatedAt = time.Now()
	f.items[id] = c
	return nil
}

func (f *fakeCurrencies) Delete(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	txns     []models.CurrencyTransaction
}

func newFakeLedger() *fakeLedger { return &fakeLedger{balances: map[string]int64{}} }

func (f *fakeLedger) Grant(_ context.Context, g repo.GrantParams) (models.CurrencyTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := g.UserID + "/" + g.CurrencyID
	before := f.balances[key]
	after := before + g.Amount
	f.balances[key] = after
	desc := g.Description
	txn := models.CurrencyTransaction{
		ID:              uuid.NewString(),
		UserID:          g.UserID,
		CurrencyID:      g.CurrencyID,
		TransactionType: models.TxnAdminGrant,
		Amount:          g.Amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Description:     &desc,
		ReferenceID:     g.ReferenceID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.txns = append(f.txns, txn)
	return txn, nil
}

func (f *fakeLedger) ListTransactions(_ context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TransactionRecord
	for i := len(f.txns) - 1; i >= 0; i-- {
		out = append(out, models.TransactionRecord{
			CurrencyTransaction: f.txns[i],
			Username:            "player",
			CurrencySymbol:      "CHIP",
		})
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedger) BalancesByUser(_ context.Context, userID string) ([]models.BalanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BalanceRecord
	for key, bal := range f.balances {
		if len(key) > len(userID) && key[:len(userID)] == userID {
			out = append(out, models.BalanceRecord{
				UserBalance:    models.UserBalance{UserID: userID, Balance: bal},
				CurrencyName:   "Chips",
				CurrencySymbol: "CHIP",
			})
		}
	}
	return out, nil
}

type fakeAuditLogs struct{}

func (fakeAuditLogs) Create(_ context.Context, _ models.AuditLog) error { return nil }

// ---- fixture ----

type fixture struct {
	handler    http.Handler
	users      *fakeUsers
	currencies *fakeCurrencies
	ledger     *fakeLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)

	fu := newFakeUsers()
	fc := newFakeCurrencies()
	fl := newFakeLedger()
	recorder := services.NewAuditRecorder(fakeAuditLogs{}, wp, log)

	handler := api.NewRouter(api.Deps{
		Cfg:         config.Config{Env: "test"},
		Verifier:    identity.NewVerifier(testSecret, ""),
		Users:       fu,
		UserSvc:     services.NewUserService(fu, log),
		CurrencySvc: services.NewCurrencyService(fc, recorder, log),
		LedgerSvc:   services.NewLedgerService(fl, recorder, log),
		Log:         log,
	})
	return &fixture{handler: handler, users: fu, currencies: fc, ledger: fl}
}

func (fx *fixture) addUser(t *testing.T, isAdmin bool) models.User {
	t.Helper()
	u := models.User{
		ID:       uuid.NewString(),
		Email:    "player@example.com",
		Username: "player",
		IsAdmin:  isAdmin,
	}
	fx.users.mu.Lock()
	fx.users.users[u.ID] = u
	fx.users.mu.Unlock()
	return u
}

func mintToken(t *testing.T, sub, email string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}
