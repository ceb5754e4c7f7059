package repository

import (
	"errors"

	"itdocsapi/config"
	"itdocsapi/models"
	"itdocsapi/pkg/apperr"

	"gorm.io/gorm"
)

// ClientRepository loads clients together with their sites and addresses.
type ClientRepository interface {
	GetTree(tx *gorm.DB, id uint) (*models.Client, error)
	GetAllTrees(tx *gorm.DB) ([]models.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance.
func NewClientRepository() ClientRepository {
	return &clientRepository{
		db: config.DB,
	}
}

// NewClientRepositoryWithDB creates a client repository over db.
func NewClientRepositoryWithDB(db *gorm.DB) ClientRepository {
	return &clientRepository{
		db: db,
	}
}

func (r *clientRepository) GetTree(tx *gorm.DB, id uint) (*models.Client, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var client models.Client
	err := db.Preload("Sites", orderByID).
		Preload("Sites.Addresses", orderByID).
		Where("id = ?", id).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("client", id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetAllTrees(tx *gorm.DB) ([]models.Client, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var clients []models.Client
	if err := db.Preload("Sites", orderByID).
		Preload("Sites.Addresses", orderByID).
		Order("id").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
