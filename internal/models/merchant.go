package models

import "time"

type Merchant struct {
	CNPJ       string    `gorm:"primaryKey;size:14" json:"cnpj"`
	CategoryID uint      `gorm:"not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	LegalName  string    `gorm:"size:50;not null" json:"legal_name"`
	TradeName  string    `gorm:"size:30;not null" json:"trade_name"`
	Address    string    `gorm:"size:40;not null" json:"address"`
	District   string    `gorm:"size:30;not null" json:"district"`
	ZipCode    string    `gorm:"size:8;not null" json:"zip_code"`
	City       string    `gorm:"size:40;not null" json:"city"`
	State      string    `gorm:"size:2;not null" json:"state"`
	Contact    string    `gorm:"size:15;not null" json:"contact"`
	Email      string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
