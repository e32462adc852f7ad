// internal/catalog/domain.go
package catalog

import (
	"strings"

	"gemvault/internal/domainerr"

	"github.com/google/uuid"
)

// Kind is a product category. Every variant belongs to exactly one.
type Kind string

const (
	KindRing          Kind = "ring"
	KindNecklace      Kind = "necklace"
	KindEarring       Kind = "earring"
	KindAnklet        Kind = "anklet"
	KindHairAccessory Kind = "hair_accessory"
)

var skuPrefixes = map[Kind]string{
	KindRing:          "RING",
	KindNecklace:      "NKLACE",
	KindEarring:       "ERRNG",
	KindAnklet:        "ANKLT",
	KindHairAccessory: "HAIRACC",
}

// SKUPrefix is the category part of a SKU, e.g. "RING".
func (k Kind) SKUPrefix() string { return skuPrefixes[k] }

func (k Kind) String() string { return string(k) }

// Status is the lifecycle state of a variant.
type Status string

const (
	StatusDraft        Status = "draft"
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusDiscontinued Status = "discontinued"
)

// validTransitions maps a status to the statuses it may move to.
// Discontinued is terminal.
var validTransitions = map[Status]map[Status]bool{
	StatusDraft: {
		StatusActive:       true,
		StatusInactive:     true,
		StatusDiscontinued: true,
	},
	StatusActive: {
		StatusInactive:     true,
		StatusDiscontinued: true,
	},
	StatusInactive: {
		StatusActive:       true,
		StatusDiscontinued: true,
	},
	StatusDiscontinued: {},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) IsTerminal() bool { return s == StatusDiscontinued }

// CanTransitionTo reports whether moving from s to target is allowed.
// Staying in the same non-terminal status is always allowed.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return !s.IsTerminal()
	}
	return validTransitions[s][target]
}

// ParseStatus reads a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", domainerr.InvalidArgument("unknown status %q", s)
	}
	return st, nil
}

// VariantID identifies a variant. It is opaque apart from being non-blank.
type VariantID string

// ProductID identifies a product.
type ProductID string

// IDGenerator produces unique, non-blank identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Event is a domain event recorded against a product.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ProductCreatedEvent is recorded when a product is registered.
type ProductCreatedEvent struct {
	ID          ProductID `json:"id"`
	Description string    `json:"description"`
}

// ProductDescriptionChangedEvent is recorded when the product copy is rewritten.
type ProductDescriptionChangedEvent struct {
	ID          ProductID `json:"id"`
	Description string    `json:"description"`
}

// ProductImageAddedEvent is recorded when an image joins the gallery.
type ProductImageAddedEvent struct {
	ID  ProductID `json:"id"`
	URL string    `json:"url"`
}

// VariantAddedEvent is recorded when a variant joins a product.
type VariantAddedEvent struct {
	ProductID ProductID `json:"product_id"`
	VariantID VariantID `json:"variant_id"`
	SKU       string    `json:"sku"`
	Kind      Kind      `json:"kind"`
	BasePrice string    `json:"base_price"`
}

// VariantUpdatedEvent is recorded after any change to a variant other than its status.
type VariantUpdatedEvent struct {
	ProductID    ProductID `json:"product_id"`
	VariantID    VariantID `json:"variant_id"`
	CurrentPrice string    `json:"current_price"`
	Materials    int       `json:"materials"`
	Gemstones    int       `json:"gemstones"`
}

// VariantStatusChangedEvent is recorded when a variant moves through its lifecycle.
type VariantStatusChangedEvent struct {
	ProductID ProductID `json:"product_id"`
	VariantID VariantID `json:"variant_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
}
