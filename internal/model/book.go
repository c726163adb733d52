package model

import (
	"time"
)

type Book struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:50;not null"`
	Author      string    `gorm:"size:50;not null"`
	Description string    `gorm:"column:description;size:255"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Book) TableName() string {
	return "books"
}
