package services

import "fmt"

// User-facing message strings. The web frontend this API serves is
// Japanese-first; these are the exact strings it displays.
const (
	msgValidationPrefix = "バリデーションエラー: "
	msgDatabasePrefix   = "データベースエラー: "
	msgMissingID        = "IDが指定されていません"
	msgCurrencyNotFound = "通貨が見つかりません"
)

// ValidationError is an input failure caught before any storage access.
type ValidationError struct {
	cause error
}

func (e *ValidationError) Error() string { return msgValidationPrefix + e.cause.Error() }
func (e *ValidationError) Unwrap() error { return e.cause }

func validationErr(cause error) error { return &ValidationError{cause: cause} }

// storageErr wraps a storage failure so it surfaces as a tagged failure
// message instead of a raw driver error.
func storageErr(err error) error {
	return fmt.Errorf(msgDatabasePrefix+"%w", err)
}
