package model

import (
	"math"
	"time"
)

type OverflowReason string

const (
	ReasonOverProduction    OverflowReason = "over_production"
	ReasonOutputTooFast     OverflowReason = "output_too_fast"
	ReasonStockLowSlotSmall OverflowReason = "stock_low_slot_small"
	ReasonOther             OverflowReason = "other"
)

// OverflowReasons lists the accepted reason codes in display order
var OverflowReasons = []OverflowReason{
	ReasonOverProduction,
	ReasonOutputTooFast,
	ReasonStockLowSlotSmall,
	ReasonOther,
}

// IsValidReason reports whether code is one of the enumerated reasons
func IsValidReason(code string) bool {
	for _, r := range OverflowReasons {
		if string(r) == code {
			return true
		}
	}
	return false
}

// OverflowEvent records stock that did not fit its assigned slot.
// (ProductNumber, CreatedAt) is unique and identifies the event for deletion.
// With ReasonOther the free text is stored in OverflowReason in place of the code.
type OverflowEvent struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductNumber    string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_overflow_identity,priority:1" json:"product_number"`
	Product          *Product  `gorm:"foreignKey:ProductNumber;references:ProductNumber" json:"-"`
	OverflowQuantity int       `gorm:"not null;check:overflow_quantity > 0" json:"overflow_quantity"`
	OverflowReason   string    `gorm:"type:text;not null" json:"overflow_reason"`
	CreatedAt        time.Time `gorm:"not null;uniqueIndex:idx_overflow_identity,priority:2;index" json:"created_at"`
	SoftDelete

	// Joined from products, never denormalized onto the event
	LocationNumber string `gorm:"->;-:migration" json:"location_number"`
	BoxType        string `gorm:"->;-:migration" json:"box_type"`
}

func (OverflowEvent) TableName() string {
	return "overflow_management"
}

// OverflowStat is the per-product rollup over a date window
type OverflowStat struct {
	ProductNumber  string `json:"product_number"`
	LocationNumber string `json:"location_number"`
	TotalQuantity  int64  `json:"total_quantity"`
	OverflowCount  int64  `json:"overflow_count"`
}

// OverflowDetail is one event in the per-product history.
// DeletedAfterDays is nil while the overflow is unresolved.
type OverflowDetail struct {
	OverflowEvent
	DeletedAfterDays *int `json:"deleted_after_days"`
}

// ResolutionDays returns whole days between creation and deletion
func ResolutionDays(createdAt time.Time, deletedAt *time.Time) *int {
	if deletedAt == nil {
		return nil
	}
	days := int(math.Floor(deletedAt.Sub(createdAt).Hours() / 24))
	return &days
}

// ToDetail annotates the event with its resolution latency
func (e *OverflowEvent) ToDetail() OverflowDetail {
	var days *int
	if e.IsDeleted {
		days = ResolutionDays(e.CreatedAt, e.DeletedAt)
	}
	return OverflowDetail{OverflowEvent: *e, DeletedAfterDays: days}
}
