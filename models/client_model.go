package models

// Client is a managed-services customer and the root of the ownership tree.
type Client struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"column:name;size:30" json:"name" validate:"required,max=30"`
	Phone       string `gorm:"column:phone;size:10" json:"phone" validate:"max=10"`
	Maintenance bool   `gorm:"column:maintenance" json:"maintenance"`

	Sites []Site `gorm:"foreignKey:ClientID" json:"-"`
}

// TableName returns the database table name for Client model.
func (Client) TableName() string {
	return "clients"
}

// Site is a physical location of a client.
type Site struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;size:50" json:"name" validate:"required,max=50"`
	ClientID uint   `gorm:"column:client_id;index" json:"client_id" validate:"required"`

	Addresses []Address `gorm:"foreignKey:SiteID" json:"-"`
}

// TableName returns the database table name for Site model.
func (Site) TableName() string {
	return "sites"
}

// Address is a postal address owned by exactly one site.
type Address struct {
	ID      uint   `gorm:"primaryKey;column:id" json:"id"`
	Number  *int   `gorm:"column:number" json:"number"`
	Street  string `gorm:"column:street;size:30" json:"street" validate:"max=30"`
	ZipCode int    `gorm:"column:zip_code" json:"zip_code"`
	City    string `gorm:"column:city;size:30" json:"city" validate:"max=30"`
	Region  string `gorm:"column:region;size:30" json:"region" validate:"max=30"`
	Country string `gorm:"column:country;size:30" json:"country" validate:"max=30"`
	SiteID  uint   `gorm:"column:site_id;index" json:"site_id" validate:"required"`
}

// TableName returns the database table name for Address model.
func (Address) TableName() string {
	return "addresses"
}
