package repository

import (
	"context"
	"errors"

	"github.com/pokerhub/pokerhub-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Users interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// CreateIfAbsent inserts the user unless a row with the same id already
	// exists, then returns the row that won. Safe under concurrent first logins.
	CreateIfAbsent(ctx context.Context, u models.User) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// CurrencyPatch carries the optional fields of a currency edit; nil means
// leave unchanged.
type CurrencyPatch struct {
	Name     *string
	Symbol   *string
	IsActive *bool
}

type Currencies interface {
	Create(ctx context.Context, c models.Currency) (models.Currency, error)
	GetByID(ctx context.Context, id string) (models.Currency, error)
	List(ctx context.Context) ([]models.Currency, error)
	ListActive(ctx context.Context) ([]models.Currency, error)
	// Update applies the patch and bumps updated_at even when no business
	// field changed; ErrNotFound when the id matches no row.
	Update(ctx context.Context, id string, p CurrencyPatch) error
	// Delete removes the currency; dependent balances and transactions go
	// with it via FK cascade. Returns the number of rows deleted.
	Delete(ctx context.Context, id string) (int64, error)
}

// GrantParams is a validated admin credit.
type GrantParams struct {
	UserID      string
	CurrencyID  string
	Amount      int64
	Description string
	ReferenceID *string
}

type Ledger interface {
	// Grant applies the balance update and the audit transaction row inside
	// one atomic database transaction.
	Grant(ctx context.Context, g GrantParams) (models.CurrencyTransaction, error)
	ListTransactions(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error)
	BalancesByUser(ctx context.Context, userID string) ([]models.BalanceRecord, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
