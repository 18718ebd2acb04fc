package models

import "time"

type Resident struct {
	CPF       string    `gorm:"primaryKey;size:11" json:"cpf"`
	Name      string    `gorm:"size:40;not null" json:"name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	Address   string    `gorm:"size:40;not null" json:"address"`
	District  string    `gorm:"size:30;not null" json:"district"`
	ZipCode   string    `gorm:"size:8;not null" json:"zip_code"`
	City      string    `gorm:"size:40;not null" json:"city"`
	State     string    `gorm:"size:2;not null" json:"state"`
	Phone     string    `gorm:"size:15;not null" json:"phone"`
	Email     string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
