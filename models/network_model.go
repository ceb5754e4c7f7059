package models

// Vlan is a VLAN carried by a network, keyed by its tag.
type Vlan struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	Tag         int    `gorm:"column:tag;uniqueIndex" json:"tag" validate:"gte=1,lte=4094"`
	Description string `gorm:"column:description;type:text" json:"description"`
	NetworkID   uint   `gorm:"column:network_id;index" json:"network_id" validate:"required"`
}

// TableName returns the database table name for Vlan model.
func (Vlan) TableName() string {
	return "vlans"
}
