package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon is keyed by its 12-character code. Codes are never recycled,
// so the primary key doubles as the global uniqueness constraint.
type Coupon struct {
	Code         string          `gorm:"primaryKey;size:12" json:"code"`
	Title        string          `gorm:"size:25;not null" json:"title"`
	MerchantCNPJ string          `gorm:"size:14;not null;index" json:"merchant_cnpj"`
	Merchant     *Merchant       `gorm:"foreignKey:MerchantCNPJ;references:CNPJ" json:"merchant,omitempty"`
	IssuedAt     time.Time       `gorm:"not null" json:"issued_at"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	EndDate      time.Time       `gorm:"not null" json:"end_date"`
	Discount     decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"discount"`
	Reservations []Reservation   `gorm:"foreignKey:CouponCode;references:Code" json:"reservations,omitempty"`
}

func (coupon *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if coupon.IssuedAt.IsZero() {
		coupon.IssuedAt = time.Now()
	}
	return
}
