// Package inventory holds the stock mapping and the operations over it.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
)

// DefaultLowThreshold is the threshold used when callers have no preference.
const DefaultLowThreshold = 5

// Repository persists and restores snapshots of the store.
type Repository interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snapshot models.Snapshot) error
}

// Journal collects log entries for successful adds. It belongs to the caller
// and is never persisted with the stock.
type Journal []models.LogEntry

// Store owns the stock mapping. Quantities that removal drives to zero or
// below are deleted, so a removal never leaves a non-positive balance behind.
type Store struct {
	mu         sync.Mutex
	quantities map[string]int
	order      []string
	logger     *zap.Logger
	now        func() time.Time
}

// NewStore returns an empty store that reports diagnostics to logger.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		quantities: make(map[string]int),
		logger:     logger,
		now:        time.Now,
	}
}

// Add increments item by qty, creating it when absent. Negative quantities
// are accepted and may leave a negative balance.
func (s *Store) Add(item string, qty int, journal *Journal) error {
	return s.AddValue(item, qty, journal)
}

// AddValue is Add for values whose types are only known at runtime, such as
// decoded request bodies. item must be a non-empty string and qty an integer.
func (s *Store) AddValue(item, qty any, journal *Journal) error {
	name, ok := item.(string)
	n, isInt := integerValue(qty)
	if !ok || name == "" || !isInt {
		s.logger.Warn("invalid types for add",
			zap.String("item_type", fmt.Sprintf("%T", item)),
			zap.String("qty_type", fmt.Sprintf("%T", qty)))
		return ErrInvalidType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quantities[name]; !exists {
		s.order = append(s.order, name)
	}
	s.quantities[name] += n

	now := s.now()
	if journal != nil {
		*journal = append(*journal, models.LogEntry{
			ID:       uuid.NewString(),
			Time:     now,
			Item:     name,
			Quantity: n,
			Message:  fmt.Sprintf("Added %d of %s", n, name),
		})
	}
	s.logger.Info("added stock", zap.String("item", name), zap.Int("quantity", n))
	return nil
}

// Remove decrements item by qty and deletes it once the balance reaches zero
// or below. Removing more than is in stock is allowed.
func (s *Store) Remove(item string, qty int) error {
	return s.RemoveValue(item, qty)
}

// RemoveValue is Remove for quantities whose type is only known at runtime.
func (s *Store) RemoveValue(item string, qty any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.quantities[item]
	if !ok {
		s.logger.Error("tried to remove non-existent item", zap.String("item", item))
		return fmt.Errorf("remove %q: %w", item, ErrMissingItem)
	}

	n, ok := numericValue(qty)
	if !ok {
		s.logger.Error("invalid quantity type for removal", zap.Any("qty", qty))
		return fmt.Errorf("remove %q: %w", item, ErrNonNumericQuantity)
	}

	remaining := current - n
	if remaining <= 0 {
		s.deleteLocked(item)
		s.logger.Info("item exhausted", zap.String("item", item), zap.Int("quantity", n))
		return nil
	}
	s.quantities[item] = remaining
	s.logger.Info("removed stock", zap.String("item", item), zap.Int("quantity", n))
	return nil
}

// Quantity returns the stored quantity for item, or 0 when absent.
func (s *Store) Quantity(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantities[item]
}

// LowItems returns, in iteration order, every item whose quantity is
// strictly below threshold.
func (s *Store) LowItems(threshold int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0)
	for _, name := range s.order {
		if s.quantities[name] < threshold {
			out = append(out, name)
		}
	}
	return out
}

// Items returns a copy of the mapping in iteration order.
func (s *Store) Items() []models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Len returns the number of distinct items in stock.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot exports the mapping for persistence.
func (s *Store) Snapshot() models.Snapshot {
	return models.Snapshot{Items: s.Items()}
}

// Restore replaces the mapping with the contents of snapshot.
func (s *Store) Restore(snapshot models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quantities = make(map[string]int, len(snapshot.Items))
	s.order = s.order[:0]
	for _, item := range snapshot.Items {
		if _, exists := s.quantities[item.Name]; !exists {
			s.order = append(s.order, item.Name)
		}
		s.quantities[item.Name] = item.Quantity
	}
}

// Load replaces the mapping with the snapshot held by repo.
func (s *Store) Load(ctx context.Context, repo Repository) error {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stock: %w", err)
	}
	s.Restore(snapshot)
	return nil
}

// Save writes the current mapping to repo.
func (s *Store) Save(ctx context.Context, repo Repository) error {
	if err := repo.Save(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	return nil
}

func (s *Store) itemsLocked() []models.StockItem {
	out := make([]models.StockItem, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, models.StockItem{Name: name, Quantity: s.quantities[name]})
	}
	return out
}

func (s *Store) deleteLocked(item string) {
	delete(s.quantities, item)
	for i, name := range s.order {
		if name == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// integerValue accepts Go integer kinds and integral json.Number values.
// Floats, bools and strings are rejected.
func integerValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// numericValue is integerValue widened to floats with no fractional part.
func numericValue(v any) (int, bool) {
	if n, ok := integerValue(v); ok {
		return n, true
	}
	switch f := v.(type) {
	case float64:
		return floatToInt(f)
	case float32:
		return floatToInt(float64(f))
	case json.Number:
		parsed, err := f.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(parsed)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}
