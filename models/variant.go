package models

// Variant is implemented by base rows (Service, Hardware) that record which
// specialization they belong to.
type Variant interface {
	SetVariant(kind, category string)
	VariantKind() string
}

// Defaulter is implemented by models that fill unset fields before validation.
type Defaulter interface {
	ApplyDefaults()
}
