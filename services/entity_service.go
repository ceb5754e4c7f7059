package services

import (
	"context"
	"fmt"

	"itdocsapi/config"
	"itdocsapi/pkg/logger"
	"itdocsapi/repository"
	"itdocsapi/schema"
	"itdocsapi/utils"
)

// EntityService exposes the registered entities to the API layer.
// Writes run in one transaction each; results are redacted when configured.
type EntityService interface {
	Create(ctx context.Context, e *schema.Entity, obj interface{}) (interface{}, error)
	Update(ctx context.Context, e *schema.Entity, id uint, obj interface{}) (interface{}, error)
	Get(ctx context.Context, e *schema.Entity, id uint) (interface{}, error)
	List(ctx context.Context, e *schema.Entity, filters map[string]uint) ([]interface{}, error)
	Delete(ctx context.Context, e *schema.Entity, id uint) error

	// Detail returns a row of an abstract base as its concrete specialization.
	Detail(ctx context.Context, root *schema.Entity, id uint) (*schema.Entity, interface{}, error)

	Registry() *schema.Registry
}

type entityService struct {
	baseRepo repository.BaseRepository
	store    repository.EntityStore
	reg      *schema.Registry
	redact   bool
}

// NewEntityService creates a service over the global database and the default registry.
func NewEntityService() EntityService {
	return &entityService{
		baseRepo: repository.NewBaseRepository(),
		store:    repository.NewEntityStore(),
		reg:      schema.Default(),
		redact:   config.Cfg.RedactSecrets,
	}
}

// NewEntityServiceWithDeps creates a service instance with injected dependencies.
func NewEntityServiceWithDeps(
	baseRepo repository.BaseRepository,
	store repository.EntityStore,
	reg *schema.Registry,
	redact bool,
) EntityService {
	return &entityService{
		baseRepo: baseRepo,
		store:    store,
		reg:      reg,
		redact:   redact,
	}
}

func (s *entityService) Registry() *schema.Registry {
	return s.reg
}

func (s *entityService) Create(ctx context.Context, e *schema.Entity, obj interface{}) (interface{}, error) {
	tx := s.baseRepo.Begin(ctx)
	if err := s.store.Create(tx, e, obj); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit %s: %w", e.Name, err)
	}
	logger.Infof("Created %s", e.Name)
	return s.render(e, obj)
}

func (s *entityService) Update(ctx context.Context, e *schema.Entity, id uint, obj interface{}) (interface{}, error) {
	tx := s.baseRepo.Begin(ctx)
	if err := s.store.Update(tx, e, id, obj); err != nil {
		tx.Rollback()
		return nil, err
	}
	updated, err := s.store.Get(tx, e, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit %s id=%d: %w", e.Name, id, err)
	}
	logger.Infof("Updated %s id=%d", e.Name, id)
	return s.render(e, updated)
}

func (s *entityService) Get(ctx context.Context, e *schema.Entity, id uint) (interface{}, error) {
	obj, err := s.store.Get(s.baseRepo.Conn(ctx), e, id)
	if err != nil {
		return nil, err
	}
	return s.render(e, obj)
}

func (s *entityService) List(ctx context.Context, e *schema.Entity, filters map[string]uint) ([]interface{}, error) {
	items, err := s.store.List(s.baseRepo.Conn(ctx), e, filters)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		rendered, err := s.render(e, item)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func (s *entityService) Delete(ctx context.Context, e *schema.Entity, id uint) error {
	tx := s.baseRepo.Begin(ctx)
	if err := s.store.Delete(tx, e, id); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit deletion of %s id=%d: %w", e.Name, id, err)
	}
	logger.Infof("Deleted %s id=%d", e.Name, id)
	return nil
}

func (s *entityService) Detail(ctx context.Context, root *schema.Entity, id uint) (*schema.Entity, interface{}, error) {
	db := s.baseRepo.Conn(ctx)
	e, err := s.store.Resolve(db, root, id)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.store.Get(db, e, id)
	if err != nil {
		return nil, nil, err
	}
	rendered, err := s.render(e, obj)
	if err != nil {
		return nil, nil, err
	}
	return e, rendered, nil
}

func (s *entityService) render(e *schema.Entity, obj interface{}) (interface{}, error) {
	if !s.redact {
		return obj, nil
	}
	fields := s.reg.SensitiveFields(e)
	if len(fields) == 0 {
		return obj, nil
	}
	return utils.Redact(obj, fields)
}
