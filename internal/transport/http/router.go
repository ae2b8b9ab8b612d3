package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/auth"
	"github.com/roden1999/money-tracking-app/internal/config"
	"github.com/roden1999/money-tracking-app/internal/rates"
	"github.com/roden1999/money-tracking-app/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Users        *service.UserService
	Wallets      *service.WalletService
	Transactions *service.TransactionService
	Dashboard    *service.DashboardService
	Rates        *rates.Client
	Tokens       *auth.Manager
}

func NewRouter(svcs Services, rl config.RateLimitConfig, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(log))
	r.Use(RateLimitMiddleware(rl.RPS, rl.Burst))
	RegisterHandlers(r, svcs)
	return r
}

func RegisterHandlers(r *gin.Engine, svcs Services) {
	ah := &authHandler{users: svcs.Users}
	wh := &walletHandler{wallets: svcs.Wallets}
	th := &transactionHandler{transactions: svcs.Transactions}
	dh := &dashboardHandler{dashboard: svcs.Dashboard, rates: svcs.Rates}

	v1 := r.Group("/v1")

	v1.POST("/auth/register", ah.register)
	v1.POST("/auth/login", ah.login)

	authed := v1.Group("", AuthMiddleware(svcs.Tokens))
	{
		authed.PUT("/auth/password", ah.changePassword)

		authed.POST("/wallets", wh.create)
		authed.GET("/wallets", wh.list)
		authed.GET("/wallets/options", wh.options)
		authed.GET("/wallets/:id/balance", wh.balance)
		authed.PUT("/wallets/:id", wh.edit)
		authed.DELETE("/wallets/:id", wh.delete)

		authed.POST("/transactions", th.create)
		authed.GET("/transactions", th.list)
		authed.GET("/transactions/options", th.options)
		authed.PUT("/transactions/:id", th.edit)
		authed.DELETE("/transactions/:id", th.delete)

		authed.GET("/dashboard/summary", dh.summary)
		authed.GET("/rates", dh.latestRates)
	}
}
