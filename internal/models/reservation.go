package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation binds one resident to one coupon. The composite unique
// index enforces at most one reservation per (coupon, resident) pair;
// RedeemedAt stays null until the merchant confirms use and is never
// cleared afterwards.
type Reservation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CouponCode  string     `gorm:"size:12;not null;uniqueIndex:idx_coupon_resident" json:"coupon_code"`
	Coupon      *Coupon    `gorm:"foreignKey:CouponCode;references:Code" json:"coupon,omitempty"`
	ResidentCPF string     `gorm:"size:11;not null;uniqueIndex:idx_coupon_resident" json:"resident_cpf"`
	Resident    *Resident  `gorm:"foreignKey:ResidentCPF;references:CPF" json:"resident,omitempty"`
	ReservedAt  time.Time  `gorm:"not null" json:"reserved_at"`
	RedeemedAt  *time.Time `json:"redeemed_at"`
}

func (reservation *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if reservation.ReservedAt.IsZero() {
		reservation.ReservedAt = time.Now()
	}
	return
}
