// Package eventlog is an in-process, append-only log of domain events
// grouped by aggregate, with optimistic concurrency on append.
package eventlog

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "gemvault/eventlog"

var (
	ErrConcurrencyConflict = errors.New("concurrency conflict: version mismatch")
	ErrInvalidVersion      = errors.New("invalid version number")
)

// Event is a domain event with its position in the aggregate's stream.
type Event struct {
	ID            int64             `json:"id"`
	AggregateID   string            `json:"aggregate_id"`
	AggregateType string            `json:"aggregate_type"`
	EventType     string            `json:"event_type"`
	EventData     json.RawMessage   `json:"event_data"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Version       int               `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Store keeps every stream in memory. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	streams map[string][]Event
	lastID  int64
	tracer  trace.Tracer
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTracerProvider traces the store with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) { s.tracer = tp.Tracer(instrumentationName) }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		streams: make(map[string][]Event),
		tracer:  otel.Tracer(instrumentationName),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEvent marshals data into an event of the given type.
func NewEvent(eventType string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return Event{EventType: eventType, EventData: raw}, nil
}

// AppendEvents appends events atomically when the stream is still at
// expectedVersion. Versions are assigned consecutively from there.
func (s *Store) AppendEvents(ctx context.Context, aggregateID, aggregateType string, expectedVersion int, events []Event) error {
	_, span := s.tracer.Start(ctx, "eventlog.append",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID),
			attribute.String("aggregate.type", aggregateType),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("event.count", len(events)),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if expectedVersion < 0 {
		return ErrInvalidVersion
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[aggregateID]
	if currentVersion := len(stream); currentVersion != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", currentVersion),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	now := s.now()
	for i, event := range events {
		s.lastID++
		event.ID = s.lastID
		event.AggregateID = aggregateID
		event.AggregateType = aggregateType
		event.Version = expectedVersion + i + 1
		event.CreatedAt = now
		stream = append(stream, event)

		span.AddEvent("event.appended", trace.WithAttributes(
			attribute.Int64("event.id", event.ID),
			attribute.Int("event.version", event.Version),
			attribute.String("event.type", event.EventType),
		))
	}
	s.streams[aggregateID] = stream

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

// LoadEvents returns the events of an aggregate with fromVersion <= version,
// and version <= toVersion when toVersion is positive.
func (s *Store) LoadEvents(ctx context.Context, aggregateID string, fromVersion, toVersion int) ([]Event, error) {
	_, span := s.tracer.Start(ctx, "eventlog.load",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID),
			attribute.Int("from.version", fromVersion),
			attribute.Int("to.version", toVersion),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []Event
	for _, event := range s.streams[aggregateID] {
		if event.Version < fromVersion || (toVersion > 0 && event.Version > toVersion) {
			continue
		}
		events = append(events, event)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return events, nil
}

// CurrentVersion returns the latest version of an aggregate, 0 if it has no events.
func (s *Store) CurrentVersion(ctx context.Context, aggregateID string) (int, error) {
	_, span := s.tracer.Start(ctx, "eventlog.get_version",
		trace.WithAttributes(attribute.String("aggregate.id", aggregateID)),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	version := len(s.streams[aggregateID])
	s.mu.RUnlock()

	span.SetAttributes(attribute.Int("current.version", version))
	return version, nil
}

// StreamEvents returns up to batchSize events of any aggregate with an id
// above fromID, in append order.
func (s *Store) StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]Event, error) {
	_, span := s.tracer.Start(ctx, "eventlog.stream",
		trace.WithAttributes(
			attribute.Int64("from.id", fromID),
			attribute.Int("batch.size", batchSize),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []Event
	for _, stream := range s.streams {
		for _, event := range stream {
			if event.ID > fromID {
				events = append(events, event)
			}
		}
	}
	slices.SortFunc(events, func(a, b Event) int { return cmp.Compare(a.ID, b.ID) })
	if batchSize > 0 && len(events) > batchSize {
		events = events[:batchSize]
	}

	span.SetAttributes(attribute.Int("events.streamed", len(events)))
	return events, nil
}
