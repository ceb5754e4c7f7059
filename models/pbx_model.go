package models

import "time"

// Queue is a call queue on a PBX.
type Queue struct {
	ID     uint   `gorm:"primaryKey;column:id" json:"id"`
	Number int    `gorm:"column:number" json:"number"`
	Name   string `gorm:"column:name;size:50" json:"name" validate:"max=50"`
	PbxID  uint   `gorm:"column:pbx_id;index" json:"pbx_id" validate:"required"`
}

// TableName returns the database table name for Queue model.
func (Queue) TableName() string {
	return "queues"
}

// Extension binds a client user to a PBX extension and its queue.
type Extension struct {
	ID             uint   `gorm:"primaryKey;column:id" json:"id"`
	Number         int    `gorm:"column:number" json:"number"`
	DisplayName    string `gorm:"column:display_name;size:100" json:"display_name" validate:"max=100"`
	Password       string `gorm:"column:password;size:100" json:"password" validate:"max=100"`
	Voicemail      bool   `gorm:"column:voicemail" json:"voicemail"`
	FindMeFollowMe bool   `gorm:"column:find_me_follow_me" json:"find_me_follow_me"`
	UserID         uint   `gorm:"column:user_id;index" json:"user_id" validate:"required"`
	PbxID          uint   `gorm:"column:pbx_id;index" json:"pbx_id" validate:"required"`
	QueueID        uint   `gorm:"column:queue_id;index" json:"queue_id" validate:"required"`
}

// TableName returns the database table name for Extension model.
func (Extension) TableName() string {
	return "extensions"
}

// Trunk is a SIP trunk to a carrier.
type Trunk struct {
	ID            uint   `gorm:"primaryKey;column:id" json:"id"`
	Name          string `gorm:"column:name;size:30" json:"name" validate:"max=30"`
	Provider      string `gorm:"column:provider;size:30" json:"provider" validate:"max=30"`
	Credential    string `gorm:"column:credential;size:100" json:"credential" validate:"max=100"`
	ServerAddress string `gorm:"column:server_address;size:30" json:"server_address" validate:"max=30"`
	Channels      int    `gorm:"column:channels" json:"channels" validate:"gte=0"`
	PbxID         uint   `gorm:"column:pbx_id;index" json:"pbx_id" validate:"required"`
}

// TableName returns the database table name for Trunk model.
func (Trunk) TableName() string {
	return "trunks"
}

// Ivr is an interactive voice response flow.
type Ivr struct {
	ID        uint `gorm:"primaryKey;column:id" json:"id"`
	DiagramID int  `gorm:"column:diagram_id" json:"diagram_id"`
	PbxID     uint `gorm:"column:pbx_id;index" json:"pbx_id" validate:"required"`
}

// TableName returns the database table name for Ivr model.
func (Ivr) TableName() string {
	return "ivrs"
}

// Schedule holds the working and off hours attached to an IVR.
type Schedule struct {
	ID           uint       `gorm:"primaryKey;column:id" json:"id"`
	WorkingHours *time.Time `gorm:"column:working_hours" json:"working_hours"`
	OffHours     *time.Time `gorm:"column:off_hours" json:"off_hours"`
	Weekdays     string     `gorm:"column:weekdays;size:15" json:"weekdays" validate:"max=15"`
	IvrID        uint       `gorm:"column:ivr_id;index" json:"ivr_id" validate:"required"`
}

// TableName returns the database table name for Schedule model.
func (Schedule) TableName() string {
	return "schedules"
}
