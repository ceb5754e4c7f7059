package repository

import (
	"errors"
	"fmt"
	"reflect"

	"itdocsapi/config"
	"itdocsapi/models"
	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/logger"
	"itdocsapi/schema"
	"itdocsapi/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityStore reads and writes any registered entity while enforcing the
// registry constraints: required fields and choices, referential integrity,
// natural keys, client/site ownership and the per-relation delete policy.
// Every method runs on tx when given; callers own commit and rollback.
type EntityStore interface {
	Create(tx *gorm.DB, e *schema.Entity, obj interface{}) error
	Update(tx *gorm.DB, e *schema.Entity, id uint, obj interface{}) error
	Get(tx *gorm.DB, e *schema.Entity, id uint) (interface{}, error)
	List(tx *gorm.DB, e *schema.Entity, filters map[string]uint) ([]interface{}, error)
	Delete(tx *gorm.DB, e *schema.Entity, id uint) error
	// Resolve returns the specialization a base row belongs to.
	Resolve(tx *gorm.DB, root *schema.Entity, id uint) (*schema.Entity, error)
}

type entityStore struct {
	db  *gorm.DB
	reg *schema.Registry
}

// NewEntityStore creates a store over the global connection and the default registry.
func NewEntityStore() EntityStore {
	return &entityStore{
		db:  config.DB,
		reg: schema.Default(),
	}
}

// NewEntityStoreWithDeps creates a store with injected dependencies.
func NewEntityStoreWithDeps(db *gorm.DB, reg *schema.Registry) EntityStore {
	return &entityStore{
		db:  db,
		reg: reg,
	}
}

func (s *entityStore) Create(tx *gorm.DB, e *schema.Entity, obj interface{}) error {
	db := conn(tx, s.db)
	if e.Abstract {
		return apperr.Validation("kind", "%s is abstract, create one of its specializations", e.Name)
	}
	lvls := levels(s.reg, e, obj)
	for _, lv := range lvls {
		if err := setPrimaryKey(db, lv.obj, 0); err != nil {
			return err
		}
	}
	if err := s.prepare(db, lvls, 0); err != nil {
		return err
	}

	// base rows first, specializations reuse the generated id
	var id uint
	for i := len(lvls) - 1; i >= 0; i-- {
		lv := lvls[i]
		if id != 0 {
			if err := setPrimaryKey(db, lv.obj, id); err != nil {
				return err
			}
		}
		if err := db.Omit(clause.Associations).Create(lv.obj).Error; err != nil {
			return fmt.Errorf("failed to insert %s: %w", lv.entity.Name, translateError(lv.entity, err))
		}
		pk, err := primaryKey(db, lv.obj)
		if err != nil {
			return err
		}
		id = pk
	}
	logger.Debugf("Created %s id=%d", e.Name, id)
	return nil
}

func (s *entityStore) Update(tx *gorm.DB, e *schema.Entity, id uint, obj interface{}) error {
	db := conn(tx, s.db)
	if e.Abstract {
		return apperr.Validation("kind", "%s is abstract, update it through its specialization", e.Name)
	}
	if err := s.mustExist(db, e, id); err != nil {
		return err
	}
	if err := s.checkKind(db, e, id); err != nil {
		return err
	}
	lvls := levels(s.reg, e, obj)
	for _, lv := range lvls {
		if err := setPrimaryKey(db, lv.obj, id); err != nil {
			return err
		}
	}
	if err := s.prepare(db, lvls, id); err != nil {
		return err
	}
	for i := len(lvls) - 1; i >= 0; i-- {
		lv := lvls[i]
		err := db.Model(lv.obj).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(lv.obj).Error
		if err != nil {
			return fmt.Errorf("failed to update %s id=%d: %w", lv.entity.Name, id, translateError(lv.entity, err))
		}
	}
	logger.Debugf("Updated %s id=%d", e.Name, id)
	return nil
}

func (s *entityStore) Get(tx *gorm.DB, e *schema.Entity, id uint) (interface{}, error) {
	db := conn(tx, s.db)
	obj := e.New()
	for _, lv := range levels(s.reg, e, obj) {
		err := db.Where("id = ?", id).First(lv.obj).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(e.Name, id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s id=%d: %w", lv.entity.Name, id, err)
		}
	}
	return obj, nil
}

func (s *entityStore) List(tx *gorm.DB, e *schema.Entity, filters map[string]uint) ([]interface{}, error) {
	db := conn(tx, s.db)
	chain := s.reg.Chain(e)

	q := db.Table(e.Table)
	for column, value := range filters {
		owner := relationOwner(chain, column)
		switch {
		case owner == nil:
			return nil, apperr.Validation(column, "cannot filter %s on this field", e.Name)
		case owner == e:
			q = q.Where(column+" = ?", value)
		default:
			sub := db.Table(owner.Table).Select("id").Where(column+" = ?", value)
			q = q.Where("id IN (?)", sub)
		}
	}

	rows := reflect.New(reflect.SliceOf(reflect.TypeOf(e.New())))
	if err := q.Order("id").Find(rows.Interface()).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", e.Name, err)
	}

	items := make([]interface{}, 0, rows.Elem().Len())
	for i := 0; i < rows.Elem().Len(); i++ {
		items = append(items, rows.Elem().Index(i).Interface())
	}
	if err := s.loadBases(db, e, items); err != nil {
		return nil, err
	}
	return items, nil
}

// loadBases fills the embedded base values of items, one query per level.
func (s *entityStore) loadBases(db *gorm.DB, e *schema.Entity, items []interface{}) error {
	if len(items) == 0 || e.Parent == "" {
		return nil
	}
	depth := len(s.reg.Chain(e))
	for d := 1; d < depth; d++ {
		targets := make(map[uint]interface{}, len(items))
		ids := make([]uint, 0, len(items))
		var baseEntity *schema.Entity
		var sample interface{}
		for _, item := range items {
			lv := levels(s.reg, e, item)[d]
			id, err := primaryKey(db, item)
			if err != nil {
				return err
			}
			targets[id] = lv.obj
			ids = append(ids, id)
			baseEntity, sample = lv.entity, lv.obj
		}

		bases := reflect.New(reflect.SliceOf(reflect.TypeOf(sample)))
		if err := db.Table(baseEntity.Table).Where("id IN ?", ids).Find(bases.Interface()).Error; err != nil {
			return fmt.Errorf("failed to load %s rows: %w", baseEntity.Name, err)
		}
		for i := 0; i < bases.Elem().Len(); i++ {
			row := bases.Elem().Index(i).Interface()
			id, err := primaryKey(db, row)
			if err != nil {
				return err
			}
			if dst, ok := targets[id]; ok {
				reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(row).Elem())
			}
		}
	}
	return nil
}

func (s *entityStore) Delete(tx *gorm.DB, e *schema.Entity, id uint) error {
	db := conn(tx, s.db)
	if err := s.mustExist(db, e, id); err != nil {
		return err
	}
	w := newCascadeWalker(db, s.reg)
	if err := w.delete(e, id); err != nil {
		return err
	}
	logger.Debugf("Deleted %s id=%d with %d dependent rows", e.Name, id, w.count-1)
	return nil
}

func (s *entityStore) Resolve(tx *gorm.DB, root *schema.Entity, id uint) (*schema.Entity, error) {
	obj, err := s.Get(tx, root, id)
	if err != nil {
		return nil, err
	}
	v, ok := obj.(models.Variant)
	if !ok {
		return root, nil
	}
	e, ok := s.reg.Variant(root, v.VariantKind())
	if !ok {
		return nil, fmt.Errorf("%s id=%d has unknown kind %q", root.Name, id, v.VariantKind())
	}
	return e, nil
}

// checkKind rejects an update of a row through any entity other than the
// specialization recorded on its root row.
func (s *entityStore) checkKind(db *gorm.DB, e *schema.Entity, id uint) error {
	root := s.reg.Root(e)
	if root == e {
		return nil
	}
	obj := root.New()
	v, ok := obj.(models.Variant)
	if !ok {
		return nil
	}
	if err := db.Where("id = ?", id).First(obj).Error; err != nil {
		return fmt.Errorf("failed to load %s id=%d: %w", root.Name, id, err)
	}
	stored, ok := s.reg.Variant(root, v.VariantKind())
	if !ok {
		return fmt.Errorf("%s id=%d has unknown kind %q", root.Name, id, v.VariantKind())
	}
	if stored != e {
		return apperr.Validation("kind", "%s id=%d is a %s, update it through %s", root.Name, id, stored.Name, stored.Path)
	}
	return nil
}

func (s *entityStore) mustExist(db *gorm.DB, e *schema.Entity, id uint) error {
	ok, err := rowExists(db, e, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(e.Name, id)
	}
	return nil
}

func rowExists(db *gorm.DB, e *schema.Entity, id interface{}) (bool, error) {
	var n int64
	if err := db.Table(e.Table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up %s id=%v: %w", e.Name, id, err)
	}
	return n > 0, nil
}

// prepare fills discriminants and defaults, then checks every constraint of
// every level. selfID excludes the row being updated from natural key checks.
func (s *entityStore) prepare(db *gorm.DB, lvls []level, selfID uint) error {
	top, root := lvls[0], lvls[len(lvls)-1]
	if d, ok := top.obj.(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	if v, ok := root.obj.(models.Variant); ok && top.entity.Kind != "" {
		v.SetVariant(top.entity.Kind, top.entity.Category)
	}
	if err := utils.ValidateStruct(top.obj); err != nil {
		return err
	}

	for _, lv := range lvls {
		for _, rel := range lv.entity.Relations {
			if err := s.checkReference(db, lv, rel); err != nil {
				return err
			}
		}
		for _, column := range lv.entity.Unique {
			if err := s.checkUnique(db, lv, column, selfID); err != nil {
				return err
			}
		}
		if lv.entity.SameOwner {
			if err := s.checkOwner(db, lv); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *entityStore) checkReference(db *gorm.DB, lv level, rel schema.Relation) error {
	value, zero, err := columnValue(db, lv.obj, rel.Column)
	if err != nil {
		return err
	}
	if zero {
		if rel.Nullable {
			return nil
		}
		return apperr.Validation(rel.Column, "this field is required")
	}
	target, _ := s.reg.Get(rel.Target)
	ok, err := rowExists(db, target, value)
	if err != nil {
		return err
	}
	if !ok {
		return &apperr.ReferentialIntegrityError{
			Entity:    lv.entity.Name,
			Field:     rel.Column,
			RefEntity: rel.Target,
			RefID:     value,
		}
	}
	return nil
}

func (s *entityStore) checkUnique(db *gorm.DB, lv level, column string, selfID uint) error {
	value, _, err := columnValue(db, lv.obj, column)
	if err != nil {
		return err
	}
	var n int64
	q := db.Table(lv.entity.Table).Where(column+" = ?", value)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check %s.%s uniqueness: %w", lv.entity.Name, column, err)
	}
	if n > 0 {
		return &apperr.UniquenessViolation{Entity: lv.entity.Name, Field: column, Value: value}
	}
	return nil
}

// checkOwner rejects a row whose client differs from the client of its site.
func (s *entityStore) checkOwner(db *gorm.DB, lv level) error {
	clientID, _, err := columnValue(db, lv.obj, "client_id")
	if err != nil {
		return err
	}
	siteID, _, err := columnValue(db, lv.obj, "site_id")
	if err != nil {
		return err
	}
	var owners []uint
	if err := db.Model(&models.Site{}).Where("id = ?", siteID).Pluck("client_id", &owners).Error; err != nil {
		return fmt.Errorf("failed to load owner of site %v: %w", siteID, err)
	}
	if len(owners) == 0 {
		return &apperr.ReferentialIntegrityError{Entity: lv.entity.Name, Field: "site_id", RefEntity: "site", RefID: siteID}
	}
	if owners[0] != clientID {
		return apperr.Validation("client_id", "client %v does not own site %v (owned by client %d)", clientID, siteID, owners[0])
	}
	return nil
}

func relationOwner(chain []*schema.Entity, column string) *schema.Entity {
	for _, ce := range chain {
		for _, rel := range ce.Relations {
			if rel.Column == column {
				return ce
			}
		}
	}
	return nil
}
