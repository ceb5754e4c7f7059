package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"itdocsapi/pkg/apperr"
	"itdocsapi/schema"

	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"
)

// parseModel returns the gorm schema of a model pointer.
func parseModel(db *gorm.DB, obj interface{}) (*gormschema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(obj); err != nil {
		return nil, fmt.Errorf("failed to parse model %T: %w", obj, err)
	}
	return stmt.Schema, nil
}

// columnValue reads the value stored in column of obj. Pointer values are
// dereferenced; zero reports a nil pointer or zero value.
func columnValue(db *gorm.DB, obj interface{}, column string) (value interface{}, zero bool, err error) {
	sch, err := parseModel(db, obj)
	if err != nil {
		return nil, false, err
	}
	field := sch.LookUpField(column)
	if field == nil {
		return nil, false, fmt.Errorf("model %T has no column %s", obj, column)
	}
	v, zero := field.ValueOf(context.Background(), reflect.ValueOf(obj).Elem())
	if zero {
		return nil, true, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv.Interface(), false, nil
}

func primaryKey(db *gorm.DB, obj interface{}) (uint, error) {
	v, zero, err := columnValue(db, obj, "id")
	if err != nil || zero {
		return 0, err
	}
	id, ok := v.(uint)
	if !ok {
		return 0, fmt.Errorf("model %T has a non uint primary key", obj)
	}
	return id, nil
}

func setPrimaryKey(db *gorm.DB, obj interface{}, id uint) error {
	sch, err := parseModel(db, obj)
	if err != nil {
		return err
	}
	if sch.PrioritizedPrimaryField == nil {
		return fmt.Errorf("model %T has no primary key", obj)
	}
	return sch.PrioritizedPrimaryField.Set(context.Background(), reflect.ValueOf(obj).Elem(), id)
}

// level is one row of an entity: the specialization itself or one of its bases.
type level struct {
	entity *schema.Entity
	obj    interface{}
}

// levels pairs obj and its embedded bases with their entities, top first.
func levels(reg *schema.Registry, e *schema.Entity, obj interface{}) []level {
	chain := reg.Chain(e)
	out := make([]level, 0, len(chain))
	cur := obj
	for _, ce := range chain {
		out = append(out, level{entity: ce, obj: cur})
		if ce.Base != nil {
			cur = ce.Base(cur)
		}
	}
	return out
}

// translateError maps driver level constraint errors to the apperr taxonomy.
func translateError(e *schema.Entity, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperr.UniquenessViolation{Entity: e.Name, Field: "", Value: err.Error()}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperr.ReferentialIntegrityError{Entity: e.Name, RefEntity: "unknown", RefID: err.Error()}
	default:
		return err
	}
}
