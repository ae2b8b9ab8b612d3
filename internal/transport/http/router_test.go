package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/auth"
	"github.com/roden1999/money-tracking-app/internal/config"
	"github.com/roden1999/money-tracking-app/internal/logger"
	"github.com/roden1999/money-tracking-app/internal/service"
	"github.com/roden1999/money-tracking-app/internal/store/postgres"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	// named shared-cache in-memory DB: every pooled connection sees the
	// same database, each test gets its own
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	log, err := logger.NewLogger()
	require.NoError(t, err)
	st := postgres.NewWithDB(db, log)
	tokens := auth.NewManager("test-secret", time.Hour)

	walletSvc := service.NewWalletService(st, nil, log)
	txSvc := service.NewTransactionService(st, nil, log)
	svcs := Services{
		Users:        service.NewUserService(st, tokens, log),
		Wallets:      walletSvc,
		Transactions: txSvc,
		Dashboard:    service.NewDashboardService(walletSvc, txSvc, nil, log),
		Tokens:       tokens,
	}
	return NewRouter(svcs, config.RateLimitConfig{RPS: 100, Burst: 100}, log)
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, name string) string {
	w := doJSON(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"user_name": name,
		"email":     name + "@example.com",
		"password":  "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"user_name": name,
		"password":  "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/v1/wallets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/wallets", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWalletAndTransactionFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "roden")

	// create wallet
	w := doJSON(r, http.MethodPost, "/v1/wallets", token, gin.H{
		"name":     "Cash",
		"currency": "PHP",
		"balance":  "1000",
		"date":     "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// record income and expense
	for _, tx := range []gin.H{
		{"wallet_id": created.ID, "amount": "500", "type": "Income", "category": "Salary", "date": "2024-02-01"},
		{"wallet_id": created.ID, "amount": "200", "type": "Expense", "category": "Food", "date": "2024-02-02"},
	} {
		w = doJSON(r, http.MethodPost, "/v1/transactions", token, tx)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// resolved balance reflects the ledger
	w = doJSON(r, http.MethodGet, "/v1/wallets", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wallets []walletResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wallets))
	require.Len(t, wallets, 1)
	assert.Equal(t, "1300", wallets[0].Balance)
	assert.Equal(t, "500", wallets[0].TotalIncome)
	assert.Equal(t, "200", wallets[0].TotalExpense)

	// single-wallet balance endpoint agrees with the listing
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/v1/wallets/%d/balance", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bal struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bal))
	assert.Equal(t, "1300", bal.Balance)

	// dashboard buckets
	w = doJSON(r, http.MethodGet, "/v1/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Totals map[string]string `json:"totals_by_currency"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "1300", summary.Totals["PHP"])
	assert.Equal(t, "0", summary.Totals["USD"])

	// filters
	w = doJSON(r, http.MethodGet, "/v1/transactions?type=Income", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txs []transactionResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "Salary", txs[0].Category)
}

func TestWalletOwnershipIsolation(t *testing.T) {
	r := newTestRouter(t)
	alice := registerAndLogin(t, r, "alice")
	bob := registerAndLogin(t, r, "bob")

	w := doJSON(r, http.MethodPost, "/v1/wallets", alice, gin.H{
		"name": "Cash", "currency": "PHP", "balance": "100", "date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// bob sees nothing and cannot delete alice's wallet
	w = doJSON(r, http.MethodGet, "/v1/wallets", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(r, http.MethodDelete, "/v1/wallets/1", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/v1/wallets/%d/balance", created.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationSurfacesAs400(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "roden")

	// unparseable balance
	w := doJSON(r, http.MethodPost, "/v1/wallets", token, gin.H{
		"name": "Cash", "currency": "PHP", "balance": "abc", "date": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad transaction type
	w = doJSON(r, http.MethodPost, "/v1/transactions", token, gin.H{
		"wallet_id": 1, "amount": "10", "type": "Transfer", "category": "Misc", "date": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryOptions(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "roden")

	w := doJSON(r, http.MethodGet, "/v1/transactions/options?type=Income", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Types      []string `json:"types"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Income", "Expense"}, resp.Types)
	assert.Contains(t, resp.Categories, "Salary")
	assert.NotContains(t, resp.Categories, "Food")
}
