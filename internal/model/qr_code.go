package model

import "time"

// QRCode is one scan captured by the handheld readers
type QRCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Quantity  int        `gorm:"not null;default:0" json:"quantity"`
	ScannedAt *time.Time `gorm:"index" json:"scanned_at"`
}

func (QRCode) TableName() string {
	return "qr_codes"
}
