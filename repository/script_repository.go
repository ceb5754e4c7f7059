package repository

import (
	"errors"

	"itdocsapi/config"
	"itdocsapi/models"
	"itdocsapi/pkg/apperr"

	"gorm.io/gorm"
)

// ScriptRepository provides read access to stored scripts.
type ScriptRepository interface {
	GetByID(tx *gorm.DB, id uint) (*models.Script, error)
}

type scriptRepository struct {
	db *gorm.DB
}

// NewScriptRepository creates a new script repository instance.
func NewScriptRepository() ScriptRepository {
	return &scriptRepository{
		db: config.DB,
	}
}

// NewScriptRepositoryWithDB creates a script repository over db.
func NewScriptRepositoryWithDB(db *gorm.DB) ScriptRepository {
	return &scriptRepository{
		db: db,
	}
}

func (r *scriptRepository) GetByID(tx *gorm.DB, id uint) (*models.Script, error) {
	db := conn(tx, r.db)
	var script models.Script
	err := db.Table(models.Script{}.TableName()).Where("id = ?", id).First(&script).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("script", id)
	}
	if err != nil {
		return nil, err
	}
	return &script, nil
}
