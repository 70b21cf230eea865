package routes

import (
	"github.com/gin-gonic/gin"

	"platelink/internal/config"
	"platelink/internal/handlers"
	"platelink/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Account  *handlers.AccountHandler
	Vehicle  *handlers.VehicleHandler
	Search   *handlers.SearchHandler
	Wallet   *handlers.WalletHandler
	Referral *handlers.ReferralHandler
	Activity *handlers.ActivityHandler
}

// Setup wires every route group under /api/v1.
func Setup(r *gin.RouterGroup, h *Handlers, cfg *config.SecurityConfig) {
	SetupAccountRoutes(r, h.Account, cfg)
	SetupVehicleRoutes(r, h.Vehicle, cfg)
	SetupSearchRoutes(r, h.Search, cfg)
	SetupWalletRoutes(r, h.Wallet, cfg)
	SetupReferralRoutes(r, h.Referral, cfg)
	SetupActivityRoutes(r, h.Activity, cfg)
}

// SetupAccountRoutes sets up signup, login and profile routes
func SetupAccountRoutes(r *gin.RouterGroup, accountHandler *handlers.AccountHandler, cfg *config.SecurityConfig) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", accountHandler.Register)
		auth.POST("/login", accountHandler.Login)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		me.GET("", accountHandler.GetMe)
		me.PUT("", accountHandler.UpdateMe)
	}
}

// SetupVehicleRoutes sets up the owner's garage routes
func SetupVehicleRoutes(r *gin.RouterGroup, vehicleHandler *handlers.VehicleHandler, cfg *config.SecurityConfig) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		vehicles.POST("", vehicleHandler.Register)
		vehicles.GET("", vehicleHandler.ListMine)
		vehicles.GET("/:id", vehicleHandler.Get)
		vehicles.DELETE("/:id", vehicleHandler.Remove)
		vehicles.GET("/:id/stats", vehicleHandler.Stats)
	}
}

// SetupSearchRoutes sets up plate search and contact reveal routes.
// Search is open to anonymous callers but rate limited per client;
// reveal requires an account because it spends credits.
func SetupSearchRoutes(r *gin.RouterGroup, searchHandler *handlers.SearchHandler, cfg *config.SecurityConfig) {
	search := r.Group("/search")
	search.Use(
		middleware.OptionalAuth(cfg.JWTSecret),
		middleware.RateLimitMiddleware(cfg.SearchRatePerSecond, cfg.SearchRateBurst),
	)
	{
		search.GET("", searchHandler.Search)
	}

	reveal := r.Group("/vehicles/:id/reveal")
	reveal.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		reveal.POST("", searchHandler.Reveal)
	}
}

// SetupWalletRoutes sets up credit balance and history routes
func SetupWalletRoutes(r *gin.RouterGroup, walletHandler *handlers.WalletHandler, cfg *config.SecurityConfig) {
	wallet := r.Group("/wallet")
	wallet.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		wallet.GET("/balance", walletHandler.GetBalance)
		wallet.GET("/history", walletHandler.GetHistory)
	}
}

// SetupReferralRoutes sets up referral validation and redemption routes
func SetupReferralRoutes(r *gin.RouterGroup, referralHandler *handlers.ReferralHandler, cfg *config.SecurityConfig) {
	r.GET("/referrals/codes/:code", referralHandler.Validate)

	referrals := r.Group("/referrals")
	referrals.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		referrals.POST("/apply", referralHandler.Apply)
		referrals.GET("/me", referralHandler.Status)
	}
}

// SetupActivityRoutes sets up the owner activity feed
func SetupActivityRoutes(r *gin.RouterGroup, activityHandler *handlers.ActivityHandler, cfg *config.SecurityConfig) {
	activity := r.Group("/activity")
	activity.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		activity.GET("", activityHandler.Feed)
	}
}
