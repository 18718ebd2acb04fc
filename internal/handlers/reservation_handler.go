package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/gfrancav/assocupom/internal/helpers"
	"github.com/gfrancav/assocupom/internal/models"
)

type ReserveRequest struct {
	Code string `json:"code" binding:"required"`
}

type RedeemRequest struct {
	ReservationID uint `json:"reservation_id" binding:"required"`
}

type RedeemQRRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// ReserveCoupon binds the authenticated resident to a coupon. The
// pre-checks report precise errors; the (coupon, resident) unique index
// is what actually holds the one-reservation invariant under
// concurrent attempts.
func ReserveCoupon(c *gin.Context) {
	residentCPF, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Coupon code is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var coupon models.Coupon
	if err := gormDB.Where("code = ?", req.Code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Coupon not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving coupon.")
		return
	}

	anchor := helpers.NoonAnchor(time.Now())
	if anchor.Before(coupon.StartDate) || anchor.After(coupon.EndDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Coupon outside its validity window.")
		return
	}

	var existing models.Reservation
	err := gormDB.Where("coupon_code = ? AND resident_cpf = ?", coupon.Code, residentCPF).First(&existing).Error
	if err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already reserved this coupon.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying reservation.")
		return
	}

	reservation := models.Reservation{
		CouponCode:  coupon.Code,
		ResidentCPF: residentCPF.(string),
	}
	if err := gormDB.Create(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "You have already reserved this coupon.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to reserve the coupon.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon reserved successfully.",
		"reservation": gin.H{
			"id":          reservation.ID,
			"coupon_code": reservation.CouponCode,
		},
	})
}

// ListMyReservations returns the resident's reservations with the
// coupon, issuing merchant and category embedded, newest first.
func ListMyReservations(c *gin.Context) {
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

	var reservations []models.Reservation
	err := gormDB.Where("resident_cpf = ?", residentCPF).
		Preload("Coupon.Merchant.Category").
		Order("reserved_at DESC").
		Find(&reservations).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservations.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// RedeemCoupon stamps a reservation as used. Only the merchant that
// issued the coupon may redeem it, exactly once, and only while the
// coupon has not expired.
func RedeemCoupon(c *gin.Context) {
	merchantCNPJ, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Reservation ID is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	redeemReservation(c, gormDB, merchantCNPJ.(string), req.ReservationID)
}

func redeemReservation(c *gin.Context, gormDB *gorm.DB, merchantCNPJ string, reservationID uint) {
	var reservation models.Reservation
	err := gormDB.Preload("Coupon").Where("id = ?", reservationID).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Reservation not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservation.")
		return
	}

	if reservation.Coupon == nil || reservation.Coupon.MerchantCNPJ != merchantCNPJ {
		helpers.RespondWithError(c, http.StatusForbidden, "This coupon does not belong to your business.")
		return
	}

	if reservation.RedeemedAt != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Coupon already used.")
		return
	}

	anchor := helpers.NoonAnchor(time.Now())
	if anchor.After(reservation.Coupon.EndDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Coupon expired.")
		return
	}

	now := time.Now()
	// the IS NULL guard keeps the stamp write-once under concurrent redemptions
	result := gormDB.Model(&models.Reservation{}).
		Where("id = ? AND redeemed_at IS NULL", reservation.ID).
		Update("redeemed_at", now)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to redeem the coupon.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Coupon already used.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon redeemed successfully.",
		"reservation": gin.H{
			"id":          reservation.ID,
			"redeemed_at": now,
		},
	})
}

func reservationSignature(reservationID uint, couponCode, secretKey string) string {
	data := fmt.Sprintf("%d:%s", reservationID, couponCode)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func reservationQRData(reservation *models.Reservation) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := reservationSignature(reservation.ID, reservation.CouponCode, secretKey)
	return fmt.Sprintf("reservation:%d;coupon:%s;signature:%s",
		reservation.ID,
		reservation.CouponCode,
		signature,
	)
}

func parseReservationQRData(qrData string) (uint, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 ||
		!strings.HasPrefix(parts[0], "reservation:") ||
		!strings.HasPrefix(parts[1], "coupon:") ||
		!strings.HasPrefix(parts[2], "signature:") {
		return 0, fmt.Errorf("invalid QR data format")
	}

	reservationID, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "reservation:"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid reservation ID in QR data")
	}
	couponCode := strings.TrimPrefix(parts[1], "coupon:")
	signature := strings.TrimPrefix(parts[2], "signature:")

	expected := reservationSignature(uint(reservationID), couponCode, os.Getenv("JWT_SECRET"))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return 0, fmt.Errorf("invalid QR signature")
	}

	return uint(reservationID), nil
}

// ReservationQRCode serves a PNG the resident shows at the counter. The
// payload is HMAC-signed so a merchant scan proves the reservation was
// issued here.
func ReservationQRCode(c *gin.Context) {
	residentCPF, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Reservation not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var reservation models.Reservation
	err = gormDB.Where("id = ? AND resident_cpf = ?", uint(reservationID), residentCPF).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Reservation not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservation.")
		return
	}

	qrImage, err := qrcode.Encode(reservationQRData(&reservation), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// RedeemCouponQR redeems from a scanned QR payload; after the signature
// checks out it follows the same path as RedeemCoupon.
func RedeemCouponQR(c *gin.Context) {
	merchantCNPJ, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req RedeemQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. QR data is required.")
		return
	}

	reservationID, err := parseReservationQRData(req.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	redeemReservation(c, gormDB, merchantCNPJ.(string), reservationID)
}
