package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockRequestStatus string

const (
	StatusPending   StockRequestStatus = "pending"
	StatusCompleted StockRequestStatus = "completed"
	StatusCancelled StockRequestStatus = "cancelled"
)

// Severity is the three-tier fill level derived from the stock ratio
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var (
	highRatio   = decimal.RequireFromString("0.8")
	mediumRatio = decimal.RequireFromString("0.5")
)

// StockRequest asks a floor worker to count what is physically in a slot.
// StockQuantity and CheckedAt are set together on completion and never before.
type StockRequest struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	ProductNumber string             `gorm:"type:varchar(50);not null;index" json:"product_number"`
	Product       *Product           `gorm:"foreignKey:ProductNumber;references:ProductNumber" json:"-"`
	RequestedAt   time.Time          `gorm:"not null;index" json:"requested_at"`
	RequestedBy   string             `gorm:"type:varchar(255);not null" json:"requested_by"`
	Status        StockRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StockQuantity *int               `json:"stock_quantity"`
	CheckedAt     *time.Time         `json:"checked_at"`
	SoftDelete

	// Joined from products, never persisted here
	LocationCapacity *int `gorm:"->;-:migration" json:"location_capacity"`
}

func (StockRequest) TableName() string {
	return "stock_requests"
}

// StockRatio returns stock_quantity / location_capacity when both are known
// and the capacity is positive.
func (r *StockRequest) StockRatio() (decimal.Decimal, bool) {
	if r.StockQuantity == nil || r.LocationCapacity == nil || *r.LocationCapacity <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(*r.StockQuantity)).Div(decimal.NewFromInt(int64(*r.LocationCapacity))), true
}

// ClassifyRatio maps a ratio to its severity tier
func ClassifyRatio(ratio decimal.Decimal) Severity {
	switch {
	case ratio.GreaterThanOrEqual(highRatio):
		return SeverityHigh
	case ratio.GreaterThanOrEqual(mediumRatio):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// StockRequestResponse is the API view with the computed ratio attached
type StockRequestResponse struct {
	ID               uint               `json:"id"`
	ProductNumber    string             `json:"product_number"`
	RequestedAt      time.Time          `json:"requested_at"`
	RequestedBy      string             `json:"requested_by"`
	Status           StockRequestStatus `json:"status"`
	StockQuantity    *int               `json:"stock_quantity"`
	CheckedAt        *time.Time         `json:"checked_at"`
	IsDeleted        bool               `json:"is_deleted"`
	DeletedAt        *time.Time         `json:"deleted_at"`
	LocationCapacity *int               `json:"location_capacity"`
	StockRatio       *decimal.Decimal   `json:"stock_ratio"`
	Severity         Severity           `json:"severity,omitempty"`
}

// ToResponse converts StockRequest to StockRequestResponse
func (r *StockRequest) ToResponse() StockRequestResponse {
	resp := StockRequestResponse{
		ID:               r.ID,
		ProductNumber:    r.ProductNumber,
		RequestedAt:      r.RequestedAt,
		RequestedBy:      r.RequestedBy,
		Status:           r.Status,
		StockQuantity:    r.StockQuantity,
		CheckedAt:        r.CheckedAt,
		IsDeleted:        r.IsDeleted,
		DeletedAt:        r.DeletedAt,
		LocationCapacity: r.LocationCapacity,
	}

	if ratio, ok := r.StockRatio(); ok {
		resp.StockRatio = &ratio
		resp.Severity = ClassifyRatio(ratio)
	}

	return resp
}
