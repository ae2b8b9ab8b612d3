package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/service"
)

type transactionHandler struct {
	transactions *service.TransactionService
}

type transactionReq struct {
	WalletID    uint64 `json:"wallet_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
}

type transactionResp struct {
	ID          uint64 `json:"id"`
	WalletID    uint64 `json:"wallet_id"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func toTransactionResp(t model.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		WalletID:    t.WalletID,
		Amount:      t.Amount.String(),
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
	}
}

func (h *transactionHandler) create(c *gin.Context) {
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	t, err := h.transactions.Create(c, ledger.TransactionInput{
		UserID:      currentUser(c),
		WalletID:    req.WalletID,
		Amount:      amount,
		Type:        ledger.TxType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": t.ID})
}

// list applies the optional wallet, type and date-range filters; filters
// AND together and an absent filter means no restriction.
func (h *transactionHandler) list(c *gin.Context) {
	walletIDs, ok := parseIDList(c, c.Query("wallet_ids"))
	if !ok {
		return
	}
	var filter service.ListFilter
	filter.WalletIDs = walletIDs
	filter.Type = ledger.TxType(c.Query("type"))
	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		// inclusive upper bound on the whole day
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}
	txs, err := h.transactions.List(c, currentUser(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]transactionResp, len(txs))
	for i, t := range txs {
		out[i] = toTransactionResp(t)
	}
	c.JSON(http.StatusOK, out)
}

func (h *transactionHandler) options(c *gin.Context) {
	categories, err := h.transactions.CategoryOptions(ledger.TxType(c.Query("type")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"types":      []string{string(ledger.TypeIncome), string(ledger.TypeExpense)},
		"categories": categories,
	})
}

type editTransactionReq struct {
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
}

func (h *transactionHandler) edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req editTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	t, err := h.transactions.Edit(c, currentUser(c), id, service.EditTransactionInput{
		Amount:      amount,
		Type:        ledger.TxType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": t.ID})
}

func (h *transactionHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.transactions.Delete(c, currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
