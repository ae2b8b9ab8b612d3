package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roden1999/money-tracking-app/internal/rates"
	"github.com/roden1999/money-tracking-app/internal/service"
)

type dashboardHandler struct {
	dashboard *service.DashboardService
	rates     *rates.Client
}

// summary returns the dashboard payload. ?currency= requests an
// additional converted grand total; it is omitted when the rate lookup
// fails.
func (h *dashboardHandler) summary(c *gin.Context) {
	s, err := h.dashboard.Overview(c, currentUser(c), c.Query("currency"))
	if err != nil {
		fail(c, err)
		return
	}

	byCurrency := make(map[string]string, len(s.ByCurrency))
	for code, total := range s.ByCurrency {
		byCurrency[code] = total.String()
	}
	wallets := make([]walletResp, len(s.Wallets))
	for i, v := range s.Wallets {
		wallets[i] = toWalletResp(v)
	}
	recent := make([]transactionResp, len(s.Recent))
	for i, t := range s.Recent {
		recent[i] = toTransactionResp(t)
	}

	resp := gin.H{
		"wallets":             wallets,
		"totals_by_currency":  byCurrency,
		"recent_transactions": recent,
	}
	if s.Converted != nil {
		resp["converted_total"] = gin.H{
			"currency": s.Converted.Currency,
			"total":    s.Converted.Total.String(),
		}
	}
	c.JSON(http.StatusOK, resp)
}

// latestRates proxies cached exchange rates for the converter widget.
func (h *dashboardHandler) latestRates(c *gin.Context) {
	from := c.DefaultQuery("from", "USD")
	var symbols []string
	if to := c.Query("to"); to != "" {
		symbols = strings.Split(to, ",")
	}
	r, err := h.rates.Latest(c, from, symbols)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "rate service unavailable"})
		return
	}
	out := make(map[string]string, len(r))
	for code, rate := range r {
		out[code] = rate.String()
	}
	c.JSON(http.StatusOK, gin.H{"base": from, "rates": out})
}
