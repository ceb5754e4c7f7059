// Package schema is the explicit registry of every entity exposed by the API:
// its table, relations, deletion policy, natural keys and sensitive fields.
// Entities are listed by hand; nothing is discovered by reflection.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is returned when the registry definitions are inconsistent.
var ErrInvalidSchema = errors.New("invalid schema")

// OnDelete is the policy applied to dependent rows when a referenced row is deleted.
type OnDelete int

const (
	// Cascade deletes the dependent rows.
	Cascade OnDelete = iota
	// SetNull clears the reference column of the dependent rows.
	SetNull
)

func (o OnDelete) String() string {
	switch o {
	case Cascade:
		return "cascade"
	case SetNull:
		return "set_null"
	default:
		return fmt.Sprintf("OnDelete(%d)", int(o))
	}
}

// MarshalJSON renders the policy by name.
func (o OnDelete) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Relation is a foreign key column of an entity's own table.
type Relation struct {
	Column   string   `json:"column"`
	Target   string   `json:"target"`
	OnDelete OnDelete `json:"on_delete"`
	Nullable bool     `json:"nullable"`
}

// Entity describes one table.
//
// Specializations name their base entity in Parent and share its row id. Base
// returns a pointer to the base value embedded in a model instance.
type Entity struct {
	Name     string
	Path     string
	Table    string
	Parent   string
	Abstract bool
	// Kind is the discriminant stored on the root row for this specialization,
	// Category the default service type.
	Kind      string
	Category  string
	Relations []Relation
	// Unique lists natural key columns.
	Unique []string
	// Sensitive lists json fields holding secrets.
	Sensitive []string
	// SameOwner requires client_id to match the client of site_id.
	SameOwner bool

	New  func() interface{}
	Base func(m interface{}) interface{}
}

// Dependent is a relation of another entity pointing at an entity.
type Dependent struct {
	Entity   *Entity
	Relation Relation
}

type tabler interface {
	TableName() string
}

// Registry indexes the registered entities.
type Registry struct {
	entities   []*Entity
	byName     map[string]*Entity
	byPath     map[string]*Entity
	children   map[string][]*Entity
	dependents map[string][]Dependent
}

// NewRegistry indexes and validates entities. Registration order is kept.
func NewRegistry(entities ...*Entity) (*Registry, error) {
	r := &Registry{
		byName:     make(map[string]*Entity, len(entities)),
		byPath:     make(map[string]*Entity, len(entities)),
		children:   make(map[string][]*Entity),
		dependents: make(map[string][]Dependent),
	}
	for _, e := range entities {
		if e.Name == "" || e.New == nil {
			return nil, fmt.Errorf("%w: entity %q needs a name and a model factory", ErrInvalidSchema, e.Name)
		}
		if _, dup := r.byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate entity %q", ErrInvalidSchema, e.Name)
		}
		if e.Path == "" {
			e.Path = e.Name
		}
		if _, dup := r.byPath[e.Path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidSchema, e.Path)
		}
		if e.Table == "" {
			t, ok := e.New().(tabler)
			if !ok {
				return nil, fmt.Errorf("%w: model of %q has no TableName", ErrInvalidSchema, e.Name)
			}
			e.Table = t.TableName()
		}
		r.entities = append(r.entities, e)
		r.byName[e.Name] = e
		r.byPath[e.Path] = e
	}
	for _, e := range r.entities {
		if e.Parent != "" {
			r.children[e.Parent] = append(r.children[e.Parent], e)
		}
		for _, rel := range e.Relations {
			r.dependents[rel.Target] = append(r.dependents[rel.Target], Dependent{Entity: e, Relation: rel})
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on invalid definitions.
func MustNewRegistry(entities ...*Entity) *Registry {
	r, err := NewRegistry(entities...)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks parents, relation targets, deletion policies and rejects
// dependency cycles.
func (r *Registry) Validate() error {
	kinds := make(map[string]string)
	for _, e := range r.entities {
		if e.Parent != "" {
			if _, ok := r.byName[e.Parent]; !ok {
				return fmt.Errorf("%w: entity %q has unknown parent %q", ErrInvalidSchema, e.Name, e.Parent)
			}
			if e.Base == nil {
				return fmt.Errorf("%w: entity %q has a parent but no base accessor", ErrInvalidSchema, e.Name)
			}
			if e.Kind == "" {
				return fmt.Errorf("%w: specialization %q has no kind", ErrInvalidSchema, e.Name)
			}
		}
		for _, rel := range e.Relations {
			if _, ok := r.byName[rel.Target]; !ok {
				return fmt.Errorf("%w: %s.%s references unknown entity %q", ErrInvalidSchema, e.Name, rel.Column, rel.Target)
			}
			if rel.OnDelete == SetNull && !rel.Nullable {
				return fmt.Errorf("%w: %s.%s is set null on delete but not nullable", ErrInvalidSchema, e.Name, rel.Column)
			}
		}
	}
	// parent chains must end, kinds must be unique per root
	for _, e := range r.entities {
		seen := map[string]bool{e.Name: true}
		cur := e
		for cur.Parent != "" {
			cur = r.byName[cur.Parent]
			if seen[cur.Name] {
				return fmt.Errorf("%w: inheritance loop through %q", ErrInvalidSchema, e.Name)
			}
			seen[cur.Name] = true
		}
		if e.Kind != "" {
			key := cur.Name + "/" + e.Kind
			if other, dup := kinds[key]; dup {
				return fmt.Errorf("%w: kind %q used by both %q and %q", ErrInvalidSchema, e.Kind, other, e.Name)
			}
			kinds[key] = e.Name
		}
	}
	for _, e := range r.entities {
		if err := r.checkCycle(e); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidSchema, err)
		}
	}
	return nil
}

// checkCycle walks the "depends on" edges (relations and parent) from top.
func (r *Registry) checkCycle(top *Entity) error {
	var path []string
	onPath := make(map[string]bool)
	done := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if onPath[name] {
			chain := append(append([]string{}, path...), name)
			return fmt.Errorf("dependency cycle: %s", strings.Join(chain, "=>"))
		}
		if done[name] {
			return nil
		}
		onPath[name] = true
		path = append(path, name)
		for _, next := range r.dependsOn(r.byName[name]) {
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onPath[name] = false
		done[name] = true
		return nil
	}
	return visit(top.Name)
}

func (r *Registry) dependsOn(e *Entity) []string {
	var out []string
	if e.Parent != "" {
		out = append(out, e.Parent)
	}
	for _, rel := range e.Relations {
		out = append(out, rel.Target)
	}
	return out
}

// Entities returns every entity in registration order.
func (r *Registry) Entities() []*Entity {
	return r.entities
}

// Get returns the entity registered under name.
func (r *Registry) Get(name string) (*Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// ByPath returns the entity exposed under the URL segment path.
func (r *Registry) ByPath(path string) (*Entity, bool) {
	e, ok := r.byPath[path]
	return e, ok
}

// Chain returns e followed by its ancestors, ending with the root entity.
func (r *Registry) Chain(e *Entity) []*Entity {
	chain := []*Entity{e}
	for e.Parent != "" {
		e = r.byName[e.Parent]
		chain = append(chain, e)
	}
	return chain
}

// Root returns the topmost ancestor of e, or e itself.
func (r *Registry) Root(e *Entity) *Entity {
	chain := r.Chain(e)
	return chain[len(chain)-1]
}

// Children returns the direct specializations of e.
func (r *Registry) Children(e *Entity) []*Entity {
	return r.children[e.Name]
}

// Dependents returns the relations of other entities that reference e.
func (r *Registry) Dependents(e *Entity) []Dependent {
	return r.dependents[e.Name]
}

// Variant resolves the specialization of root stored under kind.
func (r *Registry) Variant(root *Entity, kind string) (*Entity, bool) {
	for _, e := range r.entities {
		if e.Kind == kind && e.Parent != "" && r.Root(e) == root {
			return e, true
		}
	}
	return nil, false
}

// Models returns a fresh model value per entity, for migrations.
func (r *Registry) Models() []interface{} {
	out := make([]interface{}, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e.New())
	}
	return out
}

// SensitiveFields returns the secret json fields of e and its ancestors.
func (r *Registry) SensitiveFields(e *Entity) []string {
	var out []string
	for _, c := range r.Chain(e) {
		out = append(out, c.Sensitive...)
	}
	return out
}

// EntityInfo is the public description of an entity.
type EntityInfo struct {
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	Table     string     `json:"table"`
	Parent    string     `json:"parent,omitempty"`
	Abstract  bool       `json:"abstract"`
	Kind      string     `json:"kind,omitempty"`
	Relations []Relation `json:"relations"`
	Unique    []string   `json:"unique"`
	Sensitive []string   `json:"sensitive"`
}

// Describe lists every entity for API consumers.
func (r *Registry) Describe() []EntityInfo {
	out := make([]EntityInfo, 0, len(r.entities))
	for _, e := range r.entities {
		info := EntityInfo{
			Name:      e.Name,
			Path:      e.Path,
			Table:     e.Table,
			Parent:    e.Parent,
			Abstract:  e.Abstract,
			Kind:      e.Kind,
			Relations: e.Relations,
			Unique:    e.Unique,
			Sensitive: r.SensitiveFields(e),
		}
		if info.Relations == nil {
			info.Relations = []Relation{}
		}
		if info.Unique == nil {
			info.Unique = []string{}
		}
		if info.Sensitive == nil {
			info.Sensitive = []string{}
		}
		out = append(out, info)
	}
	return out
}
