package models

import "time"

type TransactionType string

const (
	TxnAdminGrant  TransactionType = "ADMIN_GRANT"
	TxnGameBuyin   TransactionType = "GAME_BUYIN"
	TxnGameCashout TransactionType = "GAME_CASHOUT"
)

// CurrencyTransaction is an append-only ledger row. For every row
// balance_after = balance_before + amount.
type CurrencyTransaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	CurrencyID      string          `json:"currency_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          int64           `json:"amount"`
	BalanceBefore   int64           `json:"balance_before"`
	BalanceAfter    int64           `json:"balance_after"`
	Description     *string         `json:"description"`
	ReferenceID     *string         `json:"reference_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionRecord is a ledger row joined with user and currency for the
// admin console.
type TransactionRecord struct {
	CurrencyTransaction
	Username       string `json:"username"`
	CurrencySymbol string `json:"currency_symbol"`
}
