package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfrancav/assocupom/internal/helpers"
)

func validResidentInput() ResidentInput {
	return ResidentInput{
		CPF:                  "12345678909",
		Name:                 "Ana Paula Costa",
		BirthDate:            "1990-05-10",
		Address:              "Rua das Flores, 123",
		District:             "Centro",
		ZipCode:              "01001000",
		City:                 "São Paulo",
		State:                "SP",
		Phone:                "11987654321",
		Email:                "ana@email.com",
		Password:             "senha123",
		PasswordConfirmation: "senha123",
	}
}

func validMerchantInput() MerchantInput {
	return MerchantInput{
		CNPJ:                 "12345678000195",
		CategoryID:           1,
		LegalName:            "Padaria do João LTDA",
		TradeName:            "Padaria do João",
		Address:              "Av. Principal, 45",
		District:             "Centro",
		ZipCode:              "01001000",
		City:                 "São Paulo",
		State:                "SP",
		Contact:              "1133334444",
		Email:                "joao@padaria.com",
		Password:             "senha123",
		PasswordConfirmation: "senha123",
	}
}

func validCouponInput() CouponInput {
	today := time.Now()
	return CouponInput{
		Title:     "Promo",
		StartDate: today.Format("2006-01-02"),
		EndDate:   today.AddDate(0, 0, 10).Format("2006-01-02"),
		Discount:  decimal.RequireFromString("20.00"),
	}
}

func hasFieldError(details []helpers.FieldError, field string) bool {
	for _, d := range details {
		if d.Field == field {
			return true
		}
	}
	return false
}

func TestValidateResidentAccepts(t *testing.T) {
	input := validResidentInput()
	if details := ValidateResident(&input); len(details) > 0 {
		t.Fatalf("expected no errors, got %v", details)
	}
}

func TestValidateResidentCollectsAllViolations(t *testing.T) {
	input := validResidentInput()
	input.Name = "Al"
	input.Email = "not-an-email"
	input.PasswordConfirmation = "different"

	details := ValidateResident(&input)
	if len(details) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(details), details)
	}
	for _, field := range []string{"name", "email", "password_confirmation"} {
		if !hasFieldError(details, field) {
			t.Errorf("expected an error for field %q, got %v", field, details)
		}
	}
}

func TestValidateResidentRejectsBadCPF(t *testing.T) {
	input := validResidentInput()
	input.CPF = "12345678900"

	details := ValidateResident(&input)
	if !hasFieldError(details, "cpf") {
		t.Errorf("expected a cpf error, got %v", details)
	}
}

func TestValidateMerchantAccepts(t *testing.T) {
	input := validMerchantInput()
	if details := ValidateMerchant(&input); len(details) > 0 {
		t.Fatalf("expected no errors, got %v", details)
	}
}

func TestValidateMerchantRejectsBadCNPJAndMissingCategory(t *testing.T) {
	input := validMerchantInput()
	input.CNPJ = "12345678000190"
	input.CategoryID = 0

	details := ValidateMerchant(&input)
	if !hasFieldError(details, "cnpj") {
		t.Errorf("expected a cnpj error, got %v", details)
	}
	if !hasFieldError(details, "category_id") {
		t.Errorf("expected a category_id error, got %v", details)
	}
}

func TestValidateCouponAccepts(t *testing.T) {
	input := validCouponInput()
	if details := ValidateCoupon(&input); len(details) > 0 {
		t.Fatalf("expected no errors, got %v", details)
	}
}

func TestValidateCouponTitleBounds(t *testing.T) {
	input := validCouponInput()
	input.Title = "ab"
	if !hasFieldError(ValidateCoupon(&input), "title") {
		t.Error("expected an error for a 2-character title")
	}

	input = validCouponInput()
	input.Title = "this title has way more than 25 characters"
	if !hasFieldError(ValidateCoupon(&input), "title") {
		t.Error("expected an error for a title over 25 characters")
	}
}

func TestValidateCouponDiscountBounds(t *testing.T) {
	rejected := []string{"0", "100", "-5", "100.01", "99.999"}
	for _, value := range rejected {
		input := validCouponInput()
		input.Discount = decimal.RequireFromString(value)
		if !hasFieldError(ValidateCoupon(&input), "discount") {
			t.Errorf("expected discount %s to be rejected", value)
		}
	}

	accepted := []string{"0.01", "99.99", "20", "50.5"}
	for _, value := range accepted {
		input := validCouponInput()
		input.Discount = decimal.RequireFromString(value)
		if hasFieldError(ValidateCoupon(&input), "discount") {
			t.Errorf("expected discount %s to be accepted", value)
		}
	}
}

func TestValidateCouponDateRules(t *testing.T) {
	input := validCouponInput()
	input.StartDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if !hasFieldError(ValidateCoupon(&input), "start_date") {
		t.Error("expected an error for a start date in the past")
	}

	input = validCouponInput()
	input.EndDate = input.StartDate
	if !hasFieldError(ValidateCoupon(&input), "end_date") {
		t.Error("expected an error when end date equals start date")
	}

	input = validCouponInput()
	input.EndDate = "31/01/2025"
	if !hasFieldError(ValidateCoupon(&input), "end_date") {
		t.Error("expected an error for a malformed end date")
	}
}

func TestValidateCouponCollectsAllViolations(t *testing.T) {
	input := CouponInput{
		Title:     "ab",
		StartDate: time.Now().AddDate(0, 0, -2).Format("2006-01-02"),
		EndDate:   time.Now().AddDate(0, 0, -3).Format("2006-01-02"),
		Discount:  decimal.NewFromInt(100),
	}

	details := ValidateCoupon(&input)
	for _, field := range []string{"title", "start_date", "end_date", "discount"} {
		if !hasFieldError(details, field) {
			t.Errorf("expected an error for field %q, got %v", field, details)
		}
	}
}
