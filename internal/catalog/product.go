package catalog

import (
	"slices"
	"strings"

	"gemvault/internal/domainerr"
)

// Product groups the variants of one design with its copy and gallery.
//
// Invariants:
//   - variant identities are unique
//   - no two variants share the same physical attributes
type Product struct {
	id          ProductID
	description Description
	gallery     Gallery
	variants    []Variant
}

func NewProduct(id ProductID, description Description) (Product, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Product{}, domainerr.InvalidArgument("product id is required")
	}
	if description.IsZero() {
		return Product{}, domainerr.InvalidArgument("product description is required")
	}
	return Product{id: id, description: description}, nil
}

func (p Product) ID() ProductID { return p.id }

func (p Product) Description() Description { return p.description }

func (p Product) Gallery() Gallery { return p.gallery }

func (p Product) Variants() []Variant { return slices.Clone(p.variants) }

// FindVariant looks a variant up by identity.
func (p Product) FindVariant(id VariantID) (Variant, bool) {
	for _, v := range p.variants {
		if v.ID() == id {
			return v, true
		}
	}
	return nil, false
}

// AddVariant rejects a variant whose id is taken, and one that duplicates
// the physical configuration of a variant already in the product.
func (p Product) AddVariant(v Variant) (Product, error) {
	if v == nil {
		return p, domainerr.InvalidArgument("variant is required")
	}
	if _, ok := p.FindVariant(v.ID()); ok {
		return p, domainerr.InvalidArgument("product %s already has variant %s", p.id, v.ID())
	}
	if dup, ok := p.duplicateOf(v); ok {
		return p, domainerr.InvalidState("variant %s has the same attributes as %s", v.SKU(), dup.SKU())
	}
	next := p
	next.variants = append(slices.Clone(p.variants), v)
	return next, nil
}

// ReplaceVariant swaps in a new version of an existing variant.
func (p Product) ReplaceVariant(v Variant) (Product, error) {
	i := slices.IndexFunc(p.variants, func(existing Variant) bool { return existing.ID() == v.ID() })
	if i < 0 {
		return p, domainerr.NotFound("variant %s in product %s", v.ID(), p.id)
	}
	if dup, ok := p.duplicateOf(v); ok {
		return p, domainerr.InvalidState("variant %s would have the same attributes as %s", v.SKU(), dup.SKU())
	}
	next := p
	next.variants = slices.Clone(p.variants)
	next.variants[i] = v
	return next, nil
}

func (p Product) duplicateOf(v Variant) (Variant, bool) {
	for _, existing := range p.variants {
		if existing.ID() != v.ID() && existing.HasSameAttributes(v) {
			return existing, true
		}
	}
	return nil, false
}

func (p Product) ChangeDescription(d Description) (Product, error) {
	if d.IsZero() {
		return p, domainerr.InvalidArgument("product description is required")
	}
	next := p
	next.description = d
	return next, nil
}

func (p Product) AddImage(img ImageURL) Product {
	next := p
	next.gallery = p.gallery.Add(img)
	return next
}
