package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gfrancav/assocupom/config"
	"github.com/gfrancav/assocupom/internal/handlers"
	"github.com/gfrancav/assocupom/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
		public.GET("/categories", handlers.ListCategories)
	}

	resident := r.Group("/v1")
	resident.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(handlers.RoleResident))
	{
		resident.GET("/coupons/available", handlers.ListAvailableCoupons)
		resident.GET("/coupons/mine", handlers.ListMyReservations)
		resident.POST("/coupons/reserve", handlers.ReserveCoupon)
		resident.GET("/reservations/:id/qrcode", handlers.ReservationQRCode)
	}

	merchant := r.Group("/v1")
	merchant.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(handlers.RoleMerchant))
	{
		merchant.POST("/coupons", handlers.CreateCoupon)
		merchant.GET("/coupons", handlers.ListCoupons)
		merchant.POST("/coupons/redeem", handlers.RedeemCoupon)
		merchant.POST("/coupons/redeem-qr", handlers.RedeemCouponQR)
	}

	return r
}
