package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gfrancav/assocupom/internal/helpers"
	"github.com/gfrancav/assocupom/internal/models"
	"github.com/gfrancav/assocupom/internal/validation"
)

// CreateCoupon issues a new coupon for the authenticated merchant. The
// code is sampled until it misses every existing coupon; the unique
// constraint on the code column settles any race the pre-check loses.
func CreateCoupon(c *gin.Context) {
	merchantCNPJ, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var input validation.CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if details := validation.ValidateCoupon(&input); len(details) > 0 {
		helpers.RespondWithFieldErrors(c, "Invalid input. Please check your fields.", details)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	startDate, err := helpers.ParseLocalDate(input.StartDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start date.")
		return
	}
	endDate, err := helpers.ParseLocalDate(input.EndDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end date.")
		return
	}

	var coupon models.Coupon
	for {
		code := helpers.GenerateCouponCode()

		var taken int64
		if err := gormDB.Model(&models.Coupon{}).Where("code = ?", code).Count(&taken).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying coupon code.")
			return
		}
		if taken > 0 {
			continue
		}

		coupon = models.Coupon{
			Code:         code,
			Title:        input.Title,
			MerchantCNPJ: merchantCNPJ.(string),
			StartDate:    startDate,
			EndDate:      endDate,
			Discount:     input.Discount,
		}
		err := gormDB.Create(&coupon).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race on the code; sample another
			continue
		}
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create coupon.")
			return
		}
		break
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully.",
		"coupon":  coupon,
	})
}

// ListCoupons returns the merchant's coupons with their reservations.
// Recognized filters: "ativos" (end date has not passed, including
// coupons that have not started), "vencidos" (end date passed) and
// "todos" or anything else (no date filter).
func ListCoupons(c *gin.Context) {
	merchantCNPJ, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	filter := c.DefaultQuery("filter", "ativos")
	anchor := helpers.NoonAnchor(time.Now())

	query := gormDB.Where("merchant_cnpj = ?", merchantCNPJ)
	switch filter {
	case "ativos":
		query = query.Where("end_date >= ?", anchor)
	case "vencidos":
		query = query.Where("end_date < ?", anchor)
	}

	var coupons []models.Coupon
	err := query.Preload("Reservations.Resident").Order("issued_at DESC").Find(&coupons).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving coupons.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

type availableCoupon struct {
	models.Coupon
	AlreadyReserved bool `json:"already_reserved"`
}

// ListAvailableCoupons returns every coupon whose validity window
// contains today for the authenticated resident. Coupons the resident
// already reserved stay in the list, flagged so the client can swap the
// reserve action out.
func ListAvailableCoupons(c *gin.Context) {
	residentCPF, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	anchor := helpers.NoonAnchor(time.Now())

	var coupons []models.Coupon
	err := gormDB.Where("start_date <= ? AND end_date >= ?", anchor, anchor).
		Preload("Merchant.Category").
		Order("issued_at DESC").
		Find(&coupons).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving coupons.")
		return
	}

	var reservedCodes []string
	err = gormDB.Model(&models.Reservation{}).
		Where("resident_cpf = ?", residentCPF).
		Pluck("coupon_code", &reservedCodes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservations.")
		return
	}

	reserved := make(map[string]bool, len(reservedCodes))
	for _, code := range reservedCodes {
		reserved[code] = true
	}

	result := make([]availableCoupon, 0, len(coupons))
	for _, coupon := range coupons {
		result = append(result, availableCoupon{
			Coupon:          coupon,
			AlreadyReserved: reserved[coupon.Code],
		})
	}

	c.JSON(http.StatusOK, gin.H{"coupons": result})
}
