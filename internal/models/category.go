package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}
