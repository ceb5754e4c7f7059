package models

// User is a person working at a client. Not to be confused with Account,
// which is an operator of this API.
type User struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	FirstName string `gorm:"column:first_name;size:30" json:"first_name" validate:"required,max=30"`
	LastName  string `gorm:"column:last_name;size:30" json:"last_name" validate:"max=30"`
	Phone     string `gorm:"column:phone;size:14" json:"phone" validate:"max=14"`
	Email     string `gorm:"column:email;size:254" json:"email" validate:"omitempty,email,max=254"`
	ClientID  uint   `gorm:"column:client_id;index" json:"client_id" validate:"required"`
}

// TableName returns the database table name for User model.
func (User) TableName() string {
	return "users"
}

// Credential gives a user access to a service, optionally through a directory group.
type Credential struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	Username  string `gorm:"column:username;size:30" json:"username" validate:"required,max=30"`
	Password  string `gorm:"column:password;size:30" json:"password" validate:"max=30"`
	Key       string `gorm:"column:credential_key;size:1024" json:"key" validate:"max=1024"`
	UserID    uint   `gorm:"column:user_id;index" json:"user_id" validate:"required"`
	ServiceID uint   `gorm:"column:service_id;index" json:"service_id" validate:"required"`
	GroupID   *uint  `gorm:"column:group_id;index" json:"group_id"`
}

// TableName returns the database table name for Credential model.
func (Credential) TableName() string {
	return "credentials"
}
