package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/service"
)

type walletHandler struct {
	wallets *service.WalletService
}

type walletReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Currency    string `json:"currency" binding:"required"`
	Balance     string `json:"balance" binding:"required"`
	Date        string `json:"date"`
}

type walletResp struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Currency     string `json:"currency"`
	Balance      string `json:"balance"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Date         string `json:"date"`
}

func toWalletResp(v service.WalletView) walletResp {
	return walletResp{
		ID:           v.Wallet.ID,
		Name:         v.Wallet.Name,
		Description:  v.Wallet.Description,
		Currency:     v.Wallet.Currency,
		Balance:      v.Balance.String(),
		TotalIncome:  v.TotalIncome.String(),
		TotalExpense: v.TotalExpense.String(),
		Date:         v.Wallet.Date.Format("2006-01-02"),
	}
}

func (h *walletHandler) create(c *gin.Context) {
	var req walletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid balance"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	w, err := h.wallets.Create(c, ledger.WalletInput{
		UserID:      currentUser(c),
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
		Balance:     balance,
		Date:        date,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": w.ID})
}

// list returns active wallets with resolved balances; ?ids=1,2 narrows
// to a subset.
func (h *walletHandler) list(c *gin.Context) {
	ids, ok := parseIDList(c, c.Query("ids"))
	if !ok {
		return
	}
	views, err := h.wallets.List(c, currentUser(c), ids)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]walletResp, len(views))
	for i, v := range views {
		out[i] = toWalletResp(v)
	}
	c.JSON(http.StatusOK, out)
}

// balance serves the single-wallet resolved balance from the redis
// cache when fresh.
func (h *walletHandler) balance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bal, err := h.wallets.CachedBalance(c, currentUser(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "balance": bal.String()})
}

func (h *walletHandler) options(c *gin.Context) {
	opts, err := h.wallets.Options(c, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(opts))
	for i, o := range opts {
		out[i] = gin.H{"value": o.ID, "label": o.Name}
	}
	c.JSON(http.StatusOK, out)
}

func (h *walletHandler) edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req walletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid balance"})
		return
	}
	w, err := h.wallets.Edit(c, currentUser(c), id, service.EditInput{
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
		Balance:     balance,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": w.ID})
}

func (h *walletHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.wallets.Delete(c, currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "wallet deleted"})
}

// parseIDList reads a comma-separated id list query parameter.
func parseIDList(c *gin.Context, raw string) ([]uint64, bool) {
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id list"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
