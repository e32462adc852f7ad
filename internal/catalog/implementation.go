// internal/catalog/implementation.go
package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"gemvault/internal/domainerr"
	"gemvault/internal/eventlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "gemvault/catalog"
	productAggregate    = "product"
)

// service implements the Service interface. Products live in memory; every
// change is recorded in the event log before it becomes visible.
type service struct {
	mu       sync.RWMutex
	products map[ProductID]Product

	ids        IDGenerator
	eventStore *eventlog.Store
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	operations metric.Int64Counter
}

// Option configures the catalog service.
type Option func(*service)

func WithIDGenerator(g IDGenerator) Option {
	return func(s *service) { s.ids = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *service) { s.logger = l }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *service) { s.tracer = tp.Tracer(instrumentationName) }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *service) { s.meter = mp.Meter(instrumentationName) }
}

// NewService creates a new catalog service instance.
func NewService(es *eventlog.Store, opts ...Option) (Service, error) {
	if es == nil {
		return nil, domainerr.InvalidArgument("event store is required")
	}
	s := &service{
		products:   make(map[ProductID]Product),
		ids:        UUIDGenerator{},
		eventStore: es,
		logger:     slog.Default(),
		tracer:     otel.Tracer(instrumentationName),
		meter:      otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := s.meter.Int64Counter("catalog.operations",
		metric.WithDescription("Catalog operations by name and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operations counter: %w", err)
	}
	s.operations = counter
	return s, nil
}

// CreateProduct registers a new product with a fresh identity.
func (s *service) CreateProduct(ctx context.Context, description Description) (product Product, err error) {
	ctx, span := s.start(ctx, "catalog.create_product")
	defer func() { s.finish(ctx, span, "create_product", err) }()

	product, err = NewProduct(ProductID(s.ids.NewID()), description)
	if err != nil {
		return Product{}, err
	}
	span.SetAttributes(attribute.String("product.id", string(product.ID())))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID()]; exists {
		return Product{}, domainerr.InvalidState("product %s already exists", product.ID())
	}
	err = s.record(ctx, product.ID(), Event{
		Type: "ProductCreated",
		Data: ProductCreatedEvent{ID: product.ID(), Description: description.String()},
	})
	if err != nil {
		return Product{}, err
	}
	s.products[product.ID()] = product

	s.logger.InfoContext(ctx, "product created", "product_id", product.ID())
	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *service) GetProduct(ctx context.Context, id ProductID) (product Product, err error) {
	ctx, span := s.start(ctx, "catalog.get_product", attribute.String("product.id", string(id)))
	defer func() { s.finish(ctx, span, "get_product", err) }()

	if err = ctx.Err(); err != nil {
		return Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id)
}

// ListProducts returns every product ordered by ID.
func (s *service) ListProducts(ctx context.Context) (products []Product, err error) {
	ctx, span := s.start(ctx, "catalog.list_products")
	defer func() { s.finish(ctx, span, "list_products", err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	products = make([]Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(products, func(a, b Product) int { return cmp.Compare(a.ID(), b.ID()) })
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

func (s *service) ChangeDescription(ctx context.Context, id ProductID, description Description) (product Product, err error) {
	ctx, span := s.start(ctx, "catalog.change_description", attribute.String("product.id", string(id)))
	defer func() { s.finish(ctx, span, "change_description", err) }()

	return s.modify(ctx, id, func(p Product) (Product, []Event, error) {
		next, err := p.ChangeDescription(description)
		if err != nil {
			return p, nil, err
		}
		return next, []Event{{
			Type: "ProductDescriptionChanged",
			Data: ProductDescriptionChangedEvent{ID: id, Description: description.String()},
		}}, nil
	})
}

func (s *service) AddImage(ctx context.Context, id ProductID, img ImageURL) (product Product, err error) {
	ctx, span := s.start(ctx, "catalog.add_image", attribute.String("product.id", string(id)))
	defer func() { s.finish(ctx, span, "add_image", err) }()

	return s.modify(ctx, id, func(p Product) (Product, []Event, error) {
		next := p.AddImage(img)
		if next.Gallery().Len() == p.Gallery().Len() {
			return p, nil, nil
		}
		return next, []Event{{
			Type: "ProductImageAdded",
			Data: ProductImageAddedEvent{ID: id, URL: img.String()},
		}}, nil
	})
}

// AddVariant attaches a variant to a product. The duplicate check and the
// insert happen under the same lock.
func (s *service) AddVariant(ctx context.Context, productID ProductID, v Variant) (product Product, err error) {
	ctx, span := s.start(ctx, "catalog.add_variant", attribute.String("product.id", string(productID)))
	defer func() { s.finish(ctx, span, "add_variant", err) }()

	if v != nil {
		span.SetAttributes(
			attribute.String("variant.id", string(v.ID())),
			attribute.String("variant.kind", v.Kind().String()),
		)
	}

	product, err = s.modify(ctx, productID, func(p Product) (Product, []Event, error) {
		next, err := p.AddVariant(v)
		if err != nil {
			return p, nil, err
		}
		return next, []Event{{
			Type: "VariantAdded",
			Data: VariantAddedEvent{
				ProductID: productID,
				VariantID: v.ID(),
				SKU:       v.SKU(),
				Kind:      v.Kind(),
				BasePrice: v.BasePrice().String(),
			},
		}}, nil
	})
	if err != nil {
		return Product{}, err
	}

	s.logger.InfoContext(ctx, "variant added",
		"product_id", productID,
		"variant_id", v.ID(),
		"sku", v.SKU(),
	)
	return product, nil
}

// FindVariant retrieves a variant of a product.
func (s *service) FindVariant(ctx context.Context, productID ProductID, variantID VariantID) (v Variant, err error) {
	ctx, span := s.start(ctx, "catalog.find_variant",
		attribute.String("product.id", string(productID)),
		attribute.String("variant.id", string(variantID)),
	)
	defer func() { s.finish(ctx, span, "find_variant", err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.lookup(productID)
	if err != nil {
		return nil, err
	}
	v, ok := p.FindVariant(variantID)
	if !ok {
		return nil, domainerr.NotFound("variant %s in product %s", variantID, productID)
	}
	return v, nil
}

// UpdateVariant applies fn to a variant and stores the result. fn must keep
// the variant's identity.
func (s *service) UpdateVariant(ctx context.Context, productID ProductID, variantID VariantID, fn VariantMutation) (updated Variant, err error) {
	ctx, span := s.start(ctx, "catalog.update_variant",
		attribute.String("product.id", string(productID)),
		attribute.String("variant.id", string(variantID)),
	)
	defer func() { s.finish(ctx, span, "update_variant", err) }()

	return s.updateVariant(ctx, productID, variantID, fn)
}

func (s *service) updateVariant(ctx context.Context, productID ProductID, variantID VariantID, fn VariantMutation) (updated Variant, err error) {
	if fn == nil {
		return nil, domainerr.InvalidArgument("variant mutation is required")
	}
	_, err = s.modify(ctx, productID, func(p Product) (Product, []Event, error) {
		current, ok := p.FindVariant(variantID)
		if !ok {
			return p, nil, domainerr.NotFound("variant %s in product %s", variantID, productID)
		}
		next, err := fn(current)
		if err != nil {
			return p, nil, err
		}
		if next == nil || next.ID() != variantID {
			return p, nil, domainerr.InvalidState("variant mutation must keep identity %s", variantID)
		}
		replaced, err := p.ReplaceVariant(next)
		if err != nil {
			return p, nil, err
		}
		updated = next
		return replaced, variantEvents(productID, current, next), nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ChangeStatus moves a variant through its lifecycle.
func (s *service) ChangeStatus(ctx context.Context, productID ProductID, variantID VariantID, status Status) (updated Variant, err error) {
	ctx, span := s.start(ctx, "catalog.change_status",
		attribute.String("product.id", string(productID)),
		attribute.String("variant.id", string(variantID)),
		attribute.String("status.target", status.String()),
	)
	defer func() { s.finish(ctx, span, "change_status", err) }()

	updated, err = s.updateVariant(ctx, productID, variantID, func(v Variant) (Variant, error) {
		return v.withStatus(status)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "variant status changed",
		"product_id", productID,
		"variant_id", variantID,
		"status", updated.Status(),
	)
	return updated, nil
}

// History returns the recorded events of a product, oldest first.
func (s *service) History(ctx context.Context, productID ProductID) (events []eventlog.Event, err error) {
	ctx, span := s.start(ctx, "catalog.history", attribute.String("product.id", string(productID)))
	defer func() { s.finish(ctx, span, "history", err) }()

	s.mu.RLock()
	_, err = s.lookup(productID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	events, err = s.eventStore.LoadEvents(ctx, string(productID), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	span.SetAttributes(attribute.Int("events.count", len(events)))
	return events, nil
}

// lookup must be called with s.mu held.
func (s *service) lookup(id ProductID) (Product, error) {
	p, ok := s.products[id]
	if !ok {
		return Product{}, domainerr.NotFound("product %s", id)
	}
	return p, nil
}

// modify runs change against the stored product and commits the result
// together with its events. Nothing is stored when change or the append fails.
func (s *service) modify(ctx context.Context, id ProductID, change func(Product) (Product, []Event, error)) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(id)
	if err != nil {
		return Product{}, err
	}
	next, events, err := change(current)
	if err != nil {
		return Product{}, err
	}
	if len(events) == 0 {
		return current, nil
	}
	if err := s.record(ctx, id, events...); err != nil {
		return Product{}, err
	}
	s.products[id] = next
	return next, nil
}

// record appends domain events to the product's stream. Callers hold s.mu,
// so the version read here cannot go stale before the append.
func (s *service) record(ctx context.Context, id ProductID, events ...Event) error {
	version, err := s.eventStore.CurrentVersion(ctx, string(id))
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}

	batch := make([]eventlog.Event, 0, len(events))
	for _, e := range events {
		logged, err := eventlog.NewEvent(e.Type, e.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal event data: %w", err)
		}
		batch = append(batch, logged)
	}

	if err := s.eventStore.AppendEvents(ctx, string(id), productAggregate, version, batch); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// variantEvents describes a variant change; a mutation that changed nothing
// records nothing.
func variantEvents(productID ProductID, before, after Variant) []Event {
	if unchangedVariant(before, after) {
		return nil
	}
	events := []Event{{
		Type: "VariantUpdated",
		Data: VariantUpdatedEvent{
			ProductID:    productID,
			VariantID:    after.ID(),
			CurrentPrice: after.CurrentPrice().String(),
			Materials:    len(after.Materials()),
			Gemstones:    len(after.Gemstones()),
		},
	}}
	if before.Status() != after.Status() {
		events = append(events, Event{
			Type: "VariantStatusChanged",
			Data: VariantStatusChangedEvent{
				ProductID: productID,
				VariantID: after.ID(),
				From:      before.Status(),
				To:        after.Status(),
			},
		})
	}
	return events
}

func unchangedVariant(before, after Variant) bool {
	return before.Status() == after.Status() &&
		before.BasePrice().Equal(after.BasePrice()) &&
		before.CurrentPrice().Equal(after.CurrentPrice()) &&
		before.HasSameAttributes(after)
}

func (s *service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish closes the span and counts the operation by outcome.
func (s *service) finish(ctx context.Context, span trace.Span, op string, err error) {
	defer span.End()

	outcome := outcomeOf(err)
	s.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.DebugContext(ctx, "catalog operation failed",
		"operation", op,
		"outcome", outcome,
		"error", err,
	)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domainerr.ErrNotFound):
		return "not_found"
	case errors.Is(err, domainerr.ErrInvalidArgument), errors.Is(err, domainerr.ErrOutOfRange):
		return "invalid_argument"
	case errors.Is(err, domainerr.ErrInvalidState), errors.Is(err, domainerr.ErrCurrencyMismatch):
		return "rejected"
	case errors.Is(err, eventlog.ErrConcurrencyConflict):
		return "conflict"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
