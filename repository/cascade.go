package repository

import (
	"fmt"
	"strconv"

	"itdocsapi/schema"

	"gorm.io/gorm"
)

// cascadeWalker deletes a row together with its specialization rows and
// everything that depends on it, following each relation's OnDelete policy.
// Dependents are handled before the row they reference.
type cascadeWalker struct {
	db      *gorm.DB
	reg     *schema.Registry
	visited map[string]bool
	count   int
}

func newCascadeWalker(db *gorm.DB, reg *schema.Registry) *cascadeWalker {
	return &cascadeWalker{
		db:      db,
		reg:     reg,
		visited: make(map[string]bool),
	}
}

// delete removes the whole object e/id belongs to, starting from its root row.
func (w *cascadeWalker) delete(e *schema.Entity, id uint) error {
	return w.deleteTree(w.reg.Root(e), id)
}

func (w *cascadeWalker) deleteTree(e *schema.Entity, id uint) error {
	key := e.Name + "/" + strconv.FormatUint(uint64(id), 10)
	if w.visited[key] {
		return nil
	}
	w.visited[key] = true

	for _, child := range w.reg.Children(e) {
		ok, err := rowExists(w.db, child, id)
		if err != nil {
			return err
		}
		if ok {
			if err := w.deleteTree(child, id); err != nil {
				return err
			}
		}
	}

	for _, dep := range w.reg.Dependents(e) {
		if err := w.release(dep, id); err != nil {
			return err
		}
	}

	res := w.db.Table(e.Table).Where("id = ?", id).Delete(map[string]interface{}{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s id=%d: %w", e.Name, id, translateError(e, res.Error))
	}
	w.count += int(res.RowsAffected)
	return nil
}

// release applies the delete policy of one dependent relation to the rows
// referencing id.
func (w *cascadeWalker) release(dep schema.Dependent, id uint) error {
	rel, de := dep.Relation, dep.Entity
	if rel.OnDelete == schema.SetNull {
		err := w.db.Table(de.Table).
			Where(rel.Column+" = ?", id).
			Update(rel.Column, gorm.Expr("NULL")).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s.%s: %w", de.Name, rel.Column, err)
		}
		return nil
	}

	var ids []uint
	if err := w.db.Table(de.Table).Where(rel.Column+" = ?", id).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to find %s rows referencing %d: %w", de.Name, id, err)
	}
	root := w.reg.Root(de)
	for _, depID := range ids {
		if err := w.deleteTree(root, depID); err != nil {
			return err
		}
	}
	return nil
}
