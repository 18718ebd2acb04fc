package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gfrancav/assocupom/internal/helpers"
)

// Registration and coupon bodies are validated structurally, collecting
// every violated rule instead of stopping at the first. Field names in
// the reported details follow the json tags.

type ResidentInput struct {
	CPF                  string `json:"cpf" validate:"required,cpf"`
	Name                 string `json:"name" validate:"required,min=3,max=40"`
	BirthDate            string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Address              string `json:"address" validate:"required,max=40"`
	District             string `json:"district" validate:"required,max=30"`
	ZipCode              string `json:"zip_code" validate:"required,len=8,numeric"`
	City                 string `json:"city" validate:"required,max=40"`
	State                string `json:"state" validate:"required,len=2"`
	Phone                string `json:"phone" validate:"required,max=15"`
	Email                string `json:"email" validate:"required,email,max=50"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type MerchantInput struct {
	CNPJ                 string `json:"cnpj" validate:"required,cnpj"`
	CategoryID           uint   `json:"category_id" validate:"required,min=1"`
	LegalName            string `json:"legal_name" validate:"required,max=50"`
	TradeName            string `json:"trade_name" validate:"required,max=30"`
	Address              string `json:"address" validate:"required,max=40"`
	District             string `json:"district" validate:"required,max=30"`
	ZipCode              string `json:"zip_code" validate:"required,len=8,numeric"`
	City                 string `json:"city" validate:"required,max=40"`
	State                string `json:"state" validate:"required,len=2"`
	Contact              string `json:"contact" validate:"required,max=15"`
	Email                string `json:"email" validate:"required,email,max=50"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type CouponInput struct {
	Title     string          `json:"title" validate:"required,min=3,max=25"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Discount  decimal.Decimal `json:"discount"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidCPF(fl.Field().String())
	})
	v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return ValidCNPJ(fl.Field().String())
	})
	return v
}

func ValidateResident(input *ResidentInput) []helpers.FieldError {
	return collect(validate.Struct(input))
}

func ValidateMerchant(input *MerchantInput) []helpers.FieldError {
	return collect(validate.Struct(input))
}

// ValidateCoupon checks title and date formats structurally, then the
// cross-field rules: start must be today or later, end strictly after
// start (plain string comparison works on canonical YYYY-MM-DD), and
// the discount must fall in (0, 100) with at most two decimal places.
func ValidateCoupon(input *CouponInput) []helpers.FieldError {
	details := collect(validate.Struct(input))

	dateFormatOK := func(field string) bool {
		for _, d := range details {
			if d.Field == field {
				return false
			}
		}
		return true
	}

	if dateFormatOK("start_date") && input.StartDate < helpers.Today() {
		details = append(details, helpers.FieldError{
			Field:   "start_date",
			Message: "start date must be today or later",
		})
	}
	if dateFormatOK("start_date") && dateFormatOK("end_date") && input.EndDate <= input.StartDate {
		details = append(details, helpers.FieldError{
			Field:   "end_date",
			Message: "end date must be after start date",
		})
	}

	if input.Discount.LessThanOrEqual(decimal.Zero) || input.Discount.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		details = append(details, helpers.FieldError{
			Field:   "discount",
			Message: "discount must be between 0.01 and 99.99",
		})
	} else if input.Discount.Exponent() < -2 {
		details = append(details, helpers.FieldError{
			Field:   "discount",
			Message: "discount allows at most two decimal places",
		})
	}

	return details
}

func collect(err error) []helpers.FieldError {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []helpers.FieldError{{Field: "", Message: err.Error()}}
	}

	details := make([]helpers.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, helpers.FieldError{
			Field:   fieldErr.Field(),
			Message: messageFor(fieldErr),
		})
	}
	return details
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fieldErr.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s characters", fieldErr.Param())
	case "email":
		return "must be a valid e-mail address"
	case "numeric":
		return "must contain only digits"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "eqfield":
		return "passwords do not match"
	case "cpf":
		return "invalid CPF"
	case "cnpj":
		return "invalid CNPJ"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
