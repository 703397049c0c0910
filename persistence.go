package grid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ErrNotFound is returned by a KV store for a missing key.
var ErrNotFound = errors.New("key not found")

// KV is a durable string-keyed byte store, such as browser local storage
// or an embedded database.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// WidthPersistence saves and loads the width map under one namespaced key.
// It is best effort: every failure is logged as a warning and swallowed.
type WidthPersistence struct {
	kv      KV
	key     string
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// NewWidthPersistence stores widths in kv under key. A nil kv makes every
// operation a no-op, like a host without storage.
func NewWidthPersistence(kv KV, key string) *WidthPersistence {
	if key == "" {
		key = DefaultStorageKey
	}
	return &WidthPersistence{
		kv:     kv,
		key:    key,
		logger: gridLogger,
		tracer: noop.NewTracerProvider().Tracer(""),
	}
}

// Key returns the storage key.
func (p *WidthPersistence) Key() string { return p.key }

// Save writes widths as JSON.
func (p *WidthPersistence) Save(ctx context.Context, widths WidthMap) {
	if p.kv == nil {
		return
	}
	ctx, span := p.tracer.Start(ctx, "grid.widths.save", trace.WithAttributes(
		attribute.String("grid.storage_key", p.key),
		attribute.Int("grid.columns", len(widths)),
	))
	defer span.End()

	data, err := json.Marshal(widths)
	if err == nil {
		err = p.kv.Set(ctx, p.key, data)
	}
	if err != nil {
		p.fail(span, "save", err)
	}
}

// Load reads the persisted widths. It returns false when nothing usable is
// stored: a missing key, an unavailable store or a malformed payload.
func (p *WidthPersistence) Load(ctx context.Context) (WidthMap, bool) {
	if p.kv == nil {
		return nil, false
	}
	ctx, span := p.tracer.Start(ctx, "grid.widths.load", trace.WithAttributes(
		attribute.String("grid.storage_key", p.key),
	))
	defer span.End()

	data, err := p.kv.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) || (err == nil && len(data) == 0) {
		return nil, false
	}
	if err != nil {
		p.fail(span, "load", err)
		return nil, false
	}

	widths, err := decodeWidths(data)
	if err != nil {
		p.fail(span, "load", err)
		return nil, false
	}
	return widths, true
}

// Clear removes the persisted entry.
func (p *WidthPersistence) Clear(ctx context.Context) {
	if p.kv == nil {
		return
	}
	ctx, span := p.tracer.Start(ctx, "grid.widths.clear")
	defer span.End()

	if err := p.kv.Delete(ctx, p.key); err != nil && !errors.Is(err, ErrNotFound) {
		p.fail(span, "clear", err)
	}
}

func (p *WidthPersistence) fail(span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	p.metrics.persistFailed(op)
	p.logger.Warn("failed to "+op+" column widths", "key", p.key, "error", err)
}

// decodeWidths accepts fractional numbers, which other writers of the same
// key may produce, and rounds them. Non-finite and non-numeric entries make
// the whole payload invalid.
func decodeWidths(data []byte) (WidthMap, error) {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode widths: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decode widths: payload is null")
	}
	widths := make(WidthMap, len(raw))
	for field, w := range raw {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("decode widths: %q is not finite", field)
		}
		widths[field] = int(math.Round(w))
	}
	return widths, nil
}
