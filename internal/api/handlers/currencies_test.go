package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type resultBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func doAdmin(t *testing.T, fx *fixture, token, method, path, body string) (*httptest.ResponseRecorder, resultBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	fx.handler.ServeHTTP(rec, req)

	var res resultBody
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	return rec, res
}

func TestAdminCurrencies_NonAdminForbidden(t *testing.T) {
	fx := newFixture(t)
	u := fx.addUser(t, false)

	rec, _ := doAdmin(t, fx, mintToken(t, u.ID, u.Email),
		http.MethodPost, "/api/admin/currencies", `{"name":"Poker Chips","symbol":"CHIP"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	fx.currencies.mu.Lock()
	defer fx.currencies.mu.Unlock()
	require.Empty(t, fx.currencies.items)
}

func TestAdminCurrencies_CreateLowercaseSymbolFails(t *testing.T) {
	fx := newFixture(t)
	admin := fx.addUser(t, true)

	rec, res := doAdmin(t, fx, mintToken(t, admin.ID, admin.Email),
		http.MethodPost, "/api/admin/currencies", `{"name":"Poker Chips","symbol":"chip"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, res.Success)
	require.True(t, strings.HasPrefix(res.Error, "バリデーションエラー: "), res.Error)

	fx.currencies.mu.Lock()
	defer fx.currencies.mu.Unlock()
	require.Empty(t, fx.currencies.items, "validation failure must not write")
}

func TestAdminCurrencies_CreateUppercaseSymbolSucceeds(t *testing.T) {
	fx := newFixture(t)
	admin := fx.addUser(t, true)

	rec, res := doAdmin(t, fx, mintToken(t, admin.ID, admin.Email),
		http.MethodPost, "/api/admin/currencies", `{"name":"Poker Chips","symbol":"CHIP"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, res.Success)
	require.Empty(t, res.Error)

	fx.currencies.mu.Lock()
	defer fx.currencies.mu.Unlock()
	require.Len(t, fx.currencies.items, 1)
	for _, c := range fx.currencies.items {
		require.True(t, c.IsActive, "is_active defaults to true")
	}
}

func TestAdminCurrencies_EditUnknownIDIsNotFound(t *testing.T) {
	fx := newFixture(t)
	admin := fx.addUser(t, true)

	_, res := doAdmin(t, fx, mintToken(t, admin.ID, admin.Email),
		http.MethodPut, "/api/admin/currencies/"+uuid.NewString(), `{"is_active":false}`)

	require.False(t, res.Success)
	require.Equal(t, "通貨が見つかりません", res.Error)
}

func TestAdminCurrencies_EditIsActiveOnly(t *testing.T) {
	fx := newFixture(t)
	admin := fx.addUser(t, true)
	token := mintToken(t, admin.ID, admin.Email)

	_, res := doAdmin(t, fx, token, http.MethodPost, "/api/admin/currencies", `{"name":"Poker Chips","symbol":"CHIP"}`)
	require.True(t, res.Success)

	var id string
	fx.currencies.mu.Lock()
	for cid := range fx.currencies.items {
		id = cid
	}
	fx.currencies.mu.Unlock()

	_, res = doAdmin(t, fx, token, http.MethodPut, "/api/admin/currencies/"+id, `{"is_active":false}`)
	require.True(t, res.Success)

	fx.currencies.mu.Lock()
	c := fx.currencies.items[id]
	fx.currencies.mu.Unlock()
	require.False(t, c.IsActive)
	require.Equal(t, "Poker Chips", c.Name, "name unchanged")
	require.Equal(t, "CHIP", c.Symbol, "symbol unchanged")
}

func TestAdminCurrencies_DeleteUnknownIDIsIdempotentSuccess(t *testing.T) {
	fx := newFixture(t)
	admin := fx.addUser(t, true)

	rec, res := doAdmin(t, fx, mintToken(t, admin.ID, admin.Email),
		http.MethodDelete, "/api/admin/currencies/"+uuid.NewString(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, res.Success)
}
