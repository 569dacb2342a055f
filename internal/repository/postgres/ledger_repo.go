package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

type ledgerRepo struct{ pool *pgxpool.Pool }

const (
	serializationFailure = "40001"
	uniqueViolation      = "23505"
)

// retryableTxErr reports whether the transaction was aborted by a conflict
// that a clean re-run can resolve. Two concurrent first grants to the same
// (user, currency) both miss the FOR UPDATE read and race on the balance
// insert; the loser surfaces as a unique violation rather than a
// serialization failure, so both codes retry.
func retryableTxErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == serializationFailure || pgErr.Code == uniqueViolation
}

// withTx runs fn inside a serializable read-write transaction, retrying the
// whole transaction once on a retryable conflict.
func (r *ledgerRepo) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := r.runTx(ctx, fn)
		if err != nil && retryableTxErr(err) && attempt == 0 {
			continue
		}
		return err
	}
}

func (r *ledgerRepo) runTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// Grant credits a user's balance and appends the matching ledger row. Both
// writes commit or roll back together; partial state cannot escape.
func (r *ledgerRepo) Grant(ctx context.Context, g repo.GrantParams) (models.CurrencyTransaction, error) {
	var txn models.CurrencyTransaction
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var (
			balanceID string
			before    int64
		)
		err := tx.QueryRow(ctx,
			`SELECT id, balance FROM user_balances
			  WHERE user_id=$1 AND currency_id=$2
			    FOR UPDATE`,
			g.UserID, g.CurrencyID,
		).Scan(&balanceID, &before)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			before = 0
			_, err = tx.Exec(ctx,
				`INSERT INTO user_balances(user_id, currency_id, balance) VALUES($1,$2,$3)`,
				g.UserID, g.CurrencyID, g.Amount,
			)
		case err == nil:
			_, err = tx.Exec(ctx,
				`UPDATE user_balances SET balance=$2, updated_at=now() WHERE id=$1`,
				balanceID, before+g.Amount,
			)
		}
		if err != nil {
			return err
		}

		var description *string
		if g.Description != "" {
			description = &g.Description
		}
		return tx.QueryRow(ctx,
			`INSERT INTO currency_transactions
			        (user_id, currency_id, transaction_type, amount, balance_before, balance_after, description, reference_id)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			 RETURNING id, user_id, currency_id, transaction_type, amount, balance_before, balance_after, description, reference_id, created_at, updated_at`,
			g.UserID, g.CurrencyID, models.TxnAdminGrant, g.Amount, before, before+g.Amount, description, g.ReferenceID,
		).Scan(
			&txn.ID, &txn.UserID, &txn.CurrencyID, &txn.TransactionType, &txn.Amount,
			&txn.BalanceBefore, &txn.BalanceAfter, &txn.Description, &txn.ReferenceID,
			&txn.CreatedAt, &txn.UpdatedAt,
		)
	})
	if err != nil {
		return models.CurrencyTransaction{}, err
	}
	return txn, nil
}

func (r *ledgerRepo) ListTransactions(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.user_id, t.currency_id, t.transaction_type, t.amount,
		        t.balance_before, t.balance_after, t.description, t.reference_id,
		        t.created_at, t.updated_at, u.username, c.symbol
		   FROM currency_transactions t
		   JOIN users u ON u.id = t.user_id
		   JOIN currencies c ON c.id = t.currency_id
		  ORDER BY t.created_at DESC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TransactionRecord
	for rows.Next() {
		var t models.TransactionRecord
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CurrencyID, &t.TransactionType, &t.Amount,
			&t.BalanceBefore, &t.BalanceAfter, &t.Description, &t.ReferenceID,
			&t.CreatedAt, &t.UpdatedAt, &t.Username, &t.CurrencySymbol,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ledgerRepo) BalancesByUser(ctx context.Context, userID string) ([]models.BalanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.user_id, b.currency_id, b.balance, b.created_at, b.updated_at,
		        c.name, c.symbol
		   FROM user_balances b
		   JOIN currencies c ON c.id = b.currency_id
		  WHERE b.user_id = $1
		  ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BalanceRecord
	for rows.Next() {
		var b models.BalanceRecord
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CurrencyID, &b.Balance, &b.CreatedAt, &b.UpdatedAt,
			&b.CurrencyName, &b.CurrencySymbol,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
