package models

// AdShare is a file share published by an Active Directory domain, keyed by path.
type AdShare struct {
	ID                uint   `gorm:"primaryKey;column:id" json:"id"`
	Path              string `gorm:"column:path;size:200;uniqueIndex" json:"path" validate:"required,max=200"`
	Name              string `gorm:"column:name;size:50" json:"name" validate:"max=50"`
	ActiveDirectoryID uint   `gorm:"column:active_directory_id;index" json:"active_directory_id" validate:"required"`
}

// TableName returns the database table name for AdShare model.
func (AdShare) TableName() string {
	return "ad_shares"
}

// Group is a directory group.
type Group struct {
	ID                uint   `gorm:"primaryKey;column:id" json:"id"`
	Name              string `gorm:"column:name;size:30" json:"name" validate:"required,max=30"`
	ActiveDirectoryID uint   `gorm:"column:active_directory_id;index" json:"active_directory_id" validate:"required"`
}

// TableName returns the database table name for Group model.
func (Group) TableName() string {
	return "ad_groups"
}

// GroupPolicy is a script applied through the directory. It outlives the group
// it targets: deleting the group clears GroupID.
type GroupPolicy struct {
	ID                uint   `gorm:"primaryKey;column:id" json:"id"`
	Name              string `gorm:"column:name;size:20" json:"name" validate:"required,max=20"`
	Script            string `gorm:"column:script;type:text" json:"script"`
	ActiveDirectoryID uint   `gorm:"column:active_directory_id;index" json:"active_directory_id" validate:"required"`
	GroupID           *uint  `gorm:"column:group_id;index" json:"group_id"`
}

// TableName returns the database table name for GroupPolicy model.
func (GroupPolicy) TableName() string {
	return "group_policies"
}
