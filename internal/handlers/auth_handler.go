package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gfrancav/assocupom/internal/helpers"
	"github.com/gfrancav/assocupom/internal/models"
	"github.com/gfrancav/assocupom/internal/validation"
)

const (
	RoleResident = "resident"
	RoleMerchant = "merchant"
)

// RegisterRequest carries the union of resident and merchant fields.
// The document present in the body decides which registration runs:
// 11 digits mean a resident (CPF), 14 a merchant (CNPJ).
type RegisterRequest struct {
	CPF                  string `json:"cpf"`
	CNPJ                 string `json:"cnpj"`
	Name                 string `json:"name"`
	BirthDate            string `json:"birth_date"`
	CategoryID           uint   `json:"category_id"`
	LegalName            string `json:"legal_name"`
	TradeName            string `json:"trade_name"`
	Address              string `json:"address"`
	District             string `json:"district"`
	ZipCode              string `json:"zip_code"`
	City                 string `json:"city"`
	State                string `json:"state"`
	Phone                string `json:"phone"`
	Contact              string `json:"contact"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginRequest struct {
	Document string `json:"document" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	document := helpers.OnlyDigits(req.CPF)
	if document == "" {
		document = helpers.OnlyDigits(req.CNPJ)
	}

	switch len(document) {
	case 11:
		registerResident(c, document, &req)
	case 14:
		registerMerchant(c, document, &req)
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "Document must be a CPF (11 digits) or a CNPJ (14 digits).")
	}
}

func registerResident(c *gin.Context, cpf string, req *RegisterRequest) {
	input := validation.ResidentInput{
		CPF:                  cpf,
		Name:                 req.Name,
		BirthDate:            req.BirthDate,
		Address:              req.Address,
		District:             req.District,
		ZipCode:              helpers.OnlyDigits(req.ZipCode),
		City:                 req.City,
		State:                req.State,
		Phone:                helpers.OnlyDigits(req.Phone),
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	}
	if details := validation.ValidateResident(&input); len(details) > 0 {
		helpers.RespondWithFieldErrors(c, "Invalid input. Please check your fields.", details)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var existing models.Resident
	if result := gormDB.Where("cpf = ?", cpf).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "CPF already registered.")
		return
	}
	if result := gormDB.Where("email = ?", input.Email).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "E-mail already registered.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	birthDate, err := helpers.ParseLocalDate(input.BirthDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid birth date.")
		return
	}

	resident := models.Resident{
		CPF:       cpf,
		Name:      input.Name,
		BirthDate: birthDate,
		Address:   input.Address,
		District:  input.District,
		ZipCode:   input.ZipCode,
		City:      input.City,
		State:     input.State,
		Phone:     input.Phone,
		Email:     input.Email,
		Password:  string(hashedPassword),
	}

	if err := gormDB.Create(&resident).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusBadRequest, "CPF or e-mail already registered.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to register resident.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Resident registered successfully.",
		"user": gin.H{
			"id":    resident.CPF,
			"name":  resident.Name,
			"email": resident.Email,
			"role":  RoleResident,
		},
	})
}

func registerMerchant(c *gin.Context, cnpj string, req *RegisterRequest) {
	input := validation.MerchantInput{
		CNPJ:                 cnpj,
		CategoryID:           req.CategoryID,
		LegalName:            req.LegalName,
		TradeName:            req.TradeName,
		Address:              req.Address,
		District:             req.District,
		ZipCode:              helpers.OnlyDigits(req.ZipCode),
		City:                 req.City,
		State:                req.State,
		Contact:              helpers.OnlyDigits(req.Contact),
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	}
	if details := validation.ValidateMerchant(&input); len(details) > 0 {
		helpers.RespondWithFieldErrors(c, "Invalid input. Please check your fields.", details)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var category models.Category
	if err := gormDB.Where("id = ?", input.CategoryID).First(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category.")
		return
	}

	var existing models.Merchant
	if result := gormDB.Where("cnpj = ?", cnpj).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "CNPJ already registered.")
		return
	}
	if result := gormDB.Where("email = ?", input.Email).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "E-mail already registered.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	merchant := models.Merchant{
		CNPJ:       cnpj,
		CategoryID: input.CategoryID,
		LegalName:  input.LegalName,
		TradeName:  input.TradeName,
		Address:    input.Address,
		District:   input.District,
		ZipCode:    input.ZipCode,
		City:       input.City,
		State:      input.State,
		Contact:    input.Contact,
		Email:      input.Email,
		Password:   string(hashedPassword),
	}

	if err := gormDB.Create(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusBadRequest, "CNPJ or e-mail already registered.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to register merchant.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Merchant registered successfully.",
		"user": gin.H{
			"id":    merchant.CNPJ,
			"name":  merchant.TradeName,
			"email": merchant.Email,
			"role":  RoleMerchant,
		},
	})
}

// Login accepts either document kind. The length picks the identity
// table; the same invalid-credentials answer covers unknown documents
// and wrong passwords.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	document := helpers.OnlyDigits(req.Document)

	var (
		id, name, email, role, passwordHash string
	)

	switch len(document) {
	case 11:
		var resident models.Resident
		if err := gormDB.Where("cpf = ?", document).First(&resident).Error; err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		id, name, email, role, passwordHash = resident.CPF, resident.Name, resident.Email, RoleResident, resident.Password
	case 14:
		var merchant models.Merchant
		if err := gormDB.Where("cnpj = ?", document).First(&merchant).Error; err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		id, name, email, role, passwordHash = merchant.CNPJ, merchant.TradeName, merchant.Email, RoleMerchant, merchant.Password
	default:
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": role,
		"name": name,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":    id,
			"name":  name,
			"email": email,
			"role":  role,
		},
	})
}
