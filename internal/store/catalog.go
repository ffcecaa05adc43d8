// Package store holds the flat-file and SQLite persistence used by the demo
// agents. All JSON files are pretty-printed with two-space indent and
// rewritten whole on save.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// CatalogItem is one purchasable entry. Immutable after load.
type CatalogItem struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    int      `json:"price"`
	Tags     []string `json:"tags"`
}

type catalogFile struct {
	Items []CatalogItem `json:"items"`
}

// Catalog is the loaded product table plus fuzzy lookup over it.
type Catalog struct {
	items  []CatalogItem
	logger *slog.Logger
}

// LoadCatalog reads the catalog JSON, writing the default catalog on first
// run. A corrupt or unreadable file falls back to the built-in default
// in memory; this is the only persistence error the demos swallow.
func LoadCatalog(path string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			items := defaultCatalogItems()
			if err := writeJSONFile(path, catalogFile{Items: items}); err != nil {
				logger.Error("failed to write default catalog", "path", path, "error", err)
			} else {
				logger.Info("created default catalog", "path", path, "items", len(items))
			}
			return &Catalog{items: items, logger: logger}
		}
		logger.Error("failed to read catalog, using default", "path", path, "error", err)
		return &Catalog{items: defaultCatalogItems(), logger: logger}
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil || len(file.Items) == 0 {
		if err == nil {
			err = fmt.Errorf("catalog JSON must contain an 'items' list")
		}
		logger.Error("failed to parse catalog, using default", "path", path, "error", err)
		return &Catalog{items: defaultCatalogItems(), logger: logger}
	}
	return &Catalog{items: file.Items, logger: logger}
}

// Items returns all catalog entries in declaration order.
func (c *Catalog) Items() []CatalogItem {
	return c.items
}

// FindItem resolves a free-text query to one catalog entry. Policy, in order,
// first match wins: case-insensitive exact name match, query substring of the
// name, query substring of any tag. Returns false when nothing matches.
func (c *Catalog) FindItem(query string) (CatalogItem, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return CatalogItem{}, false
	}

	for _, item := range c.items {
		if strings.ToLower(item.Name) == q {
			return item, true
		}
	}
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return item, true
		}
	}
	for _, item := range c.items {
		for _, tag := range item.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return item, true
			}
		}
	}
	return CatalogItem{}, false
}

func defaultCatalogItems() []CatalogItem {
	return []CatalogItem{
		{ID: 1, Name: "Whole Wheat Bread", Category: "groceries", Price: 45, Tags: []string{"bread", "sandwich", "wheat"}},
		{ID: 2, Name: "Eggs (12 pack)", Category: "groceries", Price: 80, Tags: []string{"eggs", "protein", "breakfast"}},
		{ID: 3, Name: "Milk 1L", Category: "groceries", Price: 60, Tags: []string{"milk", "dairy"}},
		{ID: 4, Name: "Peanut Butter (Large)", Category: "groceries", Price: 180, Tags: []string{"peanut_butter", "spread"}},
		{ID: 5, Name: "Butter 200g", Category: "groceries", Price: 90, Tags: []string{"butter", "dairy"}},
		{ID: 6, Name: "Potato Chips (Classic)", Category: "snacks", Price: 35, Tags: []string{"chips", "snack"}},
		{ID: 7, Name: "Chocolate Bar", Category: "snacks", Price: 25, Tags: []string{"chocolate", "snack"}},
		{ID: 8, Name: "Salted Peanuts", Category: "snacks", Price: 40, Tags: []string{"peanuts", "snack"}},
		{ID: 9, Name: "Veg Sandwich (Ready to Eat)", Category: "prepared_food", Price: 120, Tags: []string{"sandwich", "veg"}},
		{ID: 10, Name: "Cheese Pizza (Medium)", Category: "prepared_food", Price: 250, Tags: []string{"pizza", "cheese"}},
		{ID: 11, Name: "Pasta Penne 500g", Category: "groceries", Price: 110, Tags: []string{"pasta", "penne"}},
		{ID: 12, Name: "Tomato Pasta Sauce Jar", Category: "groceries", Price: 130, Tags: []string{"sauce", "pasta"}},
	}
}
