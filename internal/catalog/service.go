// internal/catalog/service.go
package catalog

import (
	"context"

	"gemvault/internal/domainerr"
	"gemvault/internal/eventlog"
)

// Service defines the interface for the catalog service.
type Service interface {
	CreateProduct(ctx context.Context, description Description) (Product, error)
	GetProduct(ctx context.Context, id ProductID) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ChangeDescription(ctx context.Context, id ProductID, description Description) (Product, error)
	AddImage(ctx context.Context, id ProductID, img ImageURL) (Product, error)
	AddVariant(ctx context.Context, productID ProductID, v Variant) (Product, error)
	FindVariant(ctx context.Context, productID ProductID, variantID VariantID) (Variant, error)
	UpdateVariant(ctx context.Context, productID ProductID, variantID VariantID, fn VariantMutation) (Variant, error)
	ChangeStatus(ctx context.Context, productID ProductID, variantID VariantID, status Status) (Variant, error)
	History(ctx context.Context, productID ProductID) ([]eventlog.Event, error)
}

// VariantMutation derives the next version of a variant.
type VariantMutation func(Variant) (Variant, error)

// Mutate adapts a mutation of one variant category to a VariantMutation.
// Applied to a variant of another category it fails with an invalid argument.
//
//	svc.UpdateVariant(ctx, pid, vid, catalog.Mutate(func(r catalog.RingVariant) (catalog.RingVariant, error) {
//		return r.ApplyDiscount(pct)
//	}))
func Mutate[S Spec[S]](fn func(VariantOf[S]) (VariantOf[S], error)) VariantMutation {
	return func(v Variant) (Variant, error) {
		typed, ok := v.(VariantOf[S])
		if !ok {
			var spec S
			return v, domainerr.InvalidArgument("variant %s is a %s, not a %s", v.ID(), v.Kind(), spec.Kind())
		}
		next, err := fn(typed)
		if err != nil {
			return v, err
		}
		return next, nil
	}
}
