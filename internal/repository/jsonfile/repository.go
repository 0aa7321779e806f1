// Package jsonfile persists stock snapshots as a single JSON object in a flat file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
)

// DefaultPath is the snapshot file used when no path is configured.
const DefaultPath = "inventory.json"

const indent = "    "

// errMalformed marks content that is not an object of item -> integer.
var errMalformed = errors.New("malformed inventory file")

// Repository reads and writes the whole snapshot file at once.
type Repository struct {
	path   string
	logger *zap.Logger
}

// NewRepository builds a file-backed repository. An empty path means DefaultPath.
func NewRepository(path string, logger *zap.Logger) *Repository {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{path: path, logger: logger}
}

// Path returns the file the repository reads and writes.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the snapshot file. A missing file or unparseable content yields
// an empty snapshot and a diagnostic; any other I/O failure is returned.
func (r *Repository) Load(ctx context.Context) (models.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("inventory file not found, starting with empty data", zap.String("path", r.path))
			return models.Snapshot{}, nil
		}
		return models.Snapshot{}, fmt.Errorf("read %s: %w", r.path, err)
	}

	snapshot, err := Decode(data)
	if err != nil {
		r.logger.Error("failed to decode inventory file", zap.String("path", r.path), zap.Error(err))
		return models.Snapshot{}, nil
	}

	r.logger.Debug("inventory loaded", zap.String("path", r.path), zap.Int("items", snapshot.Len()))
	return snapshot, nil
}

// Save overwrites the snapshot file with indented JSON.
func (r *Repository) Save(ctx context.Context, snapshot models.Snapshot) error {
	data, err := Encode(snapshot)
	if err != nil {
		return err
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}

	r.logger.Info("data saved successfully", zap.String("path", r.path), zap.Int("items", snapshot.Len()))
	return nil
}

// Encode renders the snapshot as a JSON object, indented by four spaces,
// keeping item order.
func Encode(snapshot models.Snapshot) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, item := range snapshot.Items {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(item.Name)
		if err != nil {
			return nil, fmt.Errorf("encode item %q: %w", item.Name, err)
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.WriteString(strconv.Itoa(item.Quantity))
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("indent snapshot: %w", err)
	}
	return out.Bytes(), nil
}

// Decode parses a JSON object of item -> integer quantity, preserving key
// order. Formatting and indentation are irrelevant.
func Decode(data []byte) (models.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return models.Snapshot{}, fmt.Errorf("%w: expected object", errMalformed)
	}

	var items []models.StockItem
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: %v", errMalformed, err)
		}
		name := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: item %q: %v", errMalformed, name, err)
		}
		qty, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: item %q has non-integer quantity %s", errMalformed, name, raw)
		}

		// Duplicate keys: last one wins, first position kept.
		if i, seen := index[name]; seen {
			items[i].Quantity = qty
			continue
		}
		index[name] = len(items)
		items = append(items, models.StockItem{Name: name, Quantity: qty})
	}

	if _, err := dec.Token(); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return models.Snapshot{}, fmt.Errorf("%w: trailing data", errMalformed)
	}

	return models.Snapshot{Items: items}, nil
}
