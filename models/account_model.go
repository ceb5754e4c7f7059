package models

import "time"

// Account is an operator allowed to use the API.
type Account struct {
	ID           uint           `gorm:"primaryKey;column:id" json:"id"`
	Username     string         `gorm:"column:username;size:150;uniqueIndex" json:"username" validate:"required,max=150"`
	Email        string         `gorm:"column:email;size:254" json:"email" validate:"omitempty,email,max=254"`
	PasswordHash string         `gorm:"column:password_hash;size:100" json:"-"`
	IsActive     bool           `gorm:"column:is_active;default:true" json:"is_active"`
	DateJoined   time.Time      `gorm:"column:date_joined;autoCreateTime" json:"date_joined"`
	Groups       []AccountGroup `gorm:"many2many:account_group_members;" json:"groups"`
}

// TableName returns the database table name for Account model.
func (Account) TableName() string {
	return "accounts"
}

// AccountGroup is a named set of accounts.
type AccountGroup struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:150;uniqueIndex" json:"name" validate:"required,max=150"`
}

// TableName returns the database table name for AccountGroup model.
func (AccountGroup) TableName() string {
	return "account_groups"
}
