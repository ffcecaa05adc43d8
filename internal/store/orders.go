package store

import (
	"log/slog"
	"os"
	"time"
)

// OrderItem is a cart line snapshotted into a placed order.
type OrderItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Order is a placed order. Append-only; never mutated after creation.
type Order struct {
	OrderID      int         `json:"order_id"`
	CreatedAt    string      `json:"created_at"`
	CustomerName string      `json:"customer_name"`
	DeliveryNote string      `json:"delivery_note"`
	Items        []OrderItem `json:"items"`
	Total        int         `json:"total"`
	Status       string      `json:"status"`
}

// OrderStore persists placed orders as one JSON array, rewritten in full on
// each placement.
type OrderStore struct {
	path   string
	logger *slog.Logger
}

// NewOrderStore creates a store writing to path.
func NewOrderStore(path string, logger *slog.Logger) *OrderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStore{path: path, logger: logger.With("component", "orders")}
}

// Load returns all placed orders. A missing or unreadable file yields an
// empty list, matching first-run behavior.
func (s *OrderStore) Load() []Order {
	var orders []Order
	if err := readJSONFile(s.path, &orders); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("failed to load orders, resetting", "path", s.path, "error", err)
		}
		return nil
	}
	return orders
}

// Append persists a new order. The write is single-attempt; on failure the
// error propagates and nothing is recorded.
func (s *OrderStore) Append(order Order) error {
	orders := append(s.Load(), order)
	if err := writeJSONFile(s.path, orders); err != nil {
		return err
	}
	s.logger.Info("saved orders", "count", len(orders), "path", s.path)
	return nil
}

// NextOrderID returns the sequential id the next order will get: existing
// order count plus one.
func (s *OrderStore) NextOrderID() int {
	return len(s.Load()) + 1
}

// Timestamp renders t the way all demo records store times.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
