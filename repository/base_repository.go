package repository

import (
	"context"

	"itdocsapi/config"

	"gorm.io/gorm"
)

// BaseRepository provides transaction management capabilities for database operations.
type BaseRepository interface {
	Begin(ctx context.Context) *gorm.DB
	// Conn returns a session bound to ctx for reads outside a transaction.
	Conn(ctx context.Context) *gorm.DB
}

type baseRepository struct {
	db *gorm.DB
}

// NewBaseRepository creates a new base repository instance with database connection.
func NewBaseRepository() BaseRepository {
	return &baseRepository{
		db: config.DB,
	}
}

// NewBaseRepositoryWithDB creates a base repository over db.
func NewBaseRepositoryWithDB(db *gorm.DB) BaseRepository {
	return &baseRepository{
		db: db,
	}
}

func (r *baseRepository) Begin(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Begin()
}

func (r *baseRepository) Conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// conn returns tx when the caller runs inside a transaction, db otherwise.
func conn(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
