package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"simrig-shop/internal/domain"
	"simrig-shop/internal/storage"
)

// Catalog reads the product list from object storage. The list is fetched on
// every call so edits to the data file show up without a restart.
type Catalog struct {
	store  storage.Service
	key    string
	logger logrus.FieldLogger
}

func New(store storage.Service, key string, logger logrus.FieldLogger) *Catalog {
	return &Catalog{store: store, key: key, logger: logger}
}

// Load returns every product. A missing or unreadable list yields an empty
// slice; the failure is only logged.
func (c *Catalog) Load(ctx context.Context) []domain.Product {
	products, err := c.read(ctx)
	if err != nil {
		entry := c.logger.WithField("key", c.key).WithError(err)
		if errors.Is(err, storage.ErrNotFound) {
			entry.Warn("product list not found")
		} else {
			entry.Warn("failed to load product list")
		}
		return []domain.Product{}
	}
	return products
}

// ForCategory returns the products whose category equals label.
func (c *Catalog) ForCategory(ctx context.Context, label string) []domain.Product {
	all := c.Load(ctx)
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Category == label {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) read(ctx context.Context) ([]domain.Product, error) {
	rc, err := c.store.Open(ctx, c.key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	products, skipped, err := Decode(rc)
	if err != nil {
		return nil, err
	}
	for _, err := range skipped {
		c.logger.WithField("key", c.key).WithError(err).Warn("skipping product record")
	}
	return products, nil
}

// RecordError reports a product record that could not be decoded.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("product record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Decode parses a JSON array of products. Records that do not decode are left
// out and returned as *RecordError in skipped; err is set only when the array
// itself cannot be read.
func Decode(r io.Reader) (products []domain.Product, skipped []error, err error) {
	var records []json.RawMessage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("decode product list: %w", err)
	}

	products = make([]domain.Product, 0, len(records))
	for i, raw := range records {
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			skipped = append(skipped, &RecordError{Index: i, Err: err})
			continue
		}
		products = append(products, p)
	}
	return products, skipped, nil
}
