package models

import "time"

// Default highlighting settings for new scripts.
const (
	DefaultScriptLanguage = "python"
	DefaultScriptStyle    = "friendly"
)

// Script is a reusable code or configuration snippet.
// Language and Style name entries of the syntax highlighting registry.
type Script struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Title     string    `gorm:"column:title;size:100" json:"title" validate:"max=100"`
	Code      string    `gorm:"column:code;type:text" json:"code"`
	Linenos   bool      `gorm:"column:linenos" json:"linenos"`
	Language  string    `gorm:"column:language;size:100" json:"language" validate:"required,max=100,lexer"`
	Style     string    `gorm:"column:style;size:100" json:"style" validate:"required,max=100,hlstyle"`
}

// TableName returns the database table name for Script model.
func (Script) TableName() string {
	return "scripts"
}

// ApplyDefaults fills the highlighting settings left empty by the caller.
func (s *Script) ApplyDefaults() {
	if s.Language == "" {
		s.Language = DefaultScriptLanguage
	}
	if s.Style == "" {
		s.Style = DefaultScriptStyle
	}
}

// ConfigFile is a stored configuration document.
type ConfigFile struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"id"`
	Language string `gorm:"column:language;size:30" json:"language" validate:"max=30"`
	OpSys    string `gorm:"column:op_sys;size:30" json:"op_sys" validate:"max=30"`
	Path     string `gorm:"column:path;size:50" json:"path" validate:"required,max=50"`
	Content  string `gorm:"column:content;type:text" json:"content"`
}

// TableName returns the database table name for ConfigFile model.
func (ConfigFile) TableName() string {
	return "config_files"
}
