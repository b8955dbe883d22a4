package model

// Product is the catalog entry for a storage slot. The core never writes it.
type Product struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ProductNumber    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"product_number"`
	LocationNumber   string `gorm:"type:varchar(50);not null;index" json:"location_number"`
	BoxType          string `gorm:"type:varchar(50)" json:"box_type"`
	LocationCapacity int    `gorm:"not null;default:0;check:location_capacity >= 0" json:"location_capacity"`
	Description      string `gorm:"type:text" json:"description"`
}

func (Product) TableName() string {
	return "products"
}
