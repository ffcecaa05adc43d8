package agents

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicelab-go/agent-days/internal/store"
)

func newGroceryFixture(t *testing.T) (toolCaller, *store.OrderStore) {
	t.Helper()
	dir := t.TempDir()
	catalog := store.LoadCatalog(filepath.Join(dir, "catalog.json"), nil)
	orders := store.NewOrderStore(filepath.Join(dir, "orders.json"), nil)
	persona := NewGrocery(catalog, orders, nil)
	return toolCaller{t: t, tools: persona.Tools}, orders
}

func TestGroceryOrderFlow(t *testing.T) {
	g, orders := newGroceryFixture(t)

	r := g.call("add_item_to_cart", `{"item_name":"bread","quantity":2}`)
	assert.Equal(t, true, r["success"])
	assert.Equal(t, 90, r["cart_total"])

	summary := g.call("get_cart_summary", `{}`)
	assert.Equal(t, 90, summary["total"])

	placed := g.call("place_order", `{"customer_name":"Priya"}`)
	assert.Equal(t, true, placed["success"])
	assert.Equal(t, 1, placed["order_id"])
	assert.Equal(t, 90, placed["total"])

	saved := orders.Load()
	require.Len(t, saved, 1)
	assert.Equal(t, 1, saved[0].OrderID)
	assert.Equal(t, "Priya", saved[0].CustomerName)
	assert.Equal(t, 90, saved[0].Total)
	require.Len(t, saved[0].Items, 1)
	assert.Equal(t, 2, saved[0].Items[0].Quantity)

	// Placement cleared the cart.
	summary = g.call("get_cart_summary", `{}`)
	assert.Equal(t, 0, summary["total"])
}

func TestGroceryPlaceOrderEmptyCart(t *testing.T) {
	g, orders := newGroceryFixture(t)

	r := g.call("place_order", `{}`)
	assert.Equal(t, false, r["success"])
	assert.Empty(t, orders.Load())
}

func TestGroceryUnknownItem(t *testing.T) {
	g, _ := newGroceryFixture(t)

	r := g.call("add_item_to_cart", `{"item_name":"jetpack"}`)
	assert.Equal(t, false, r["success"])
}

func TestGroceryRecipeByFuzzyName(t *testing.T) {
	g, _ := newGroceryFixture(t)

	r := g.call("add_recipe_to_cart", `{"recipe_name":"a Peanut Butter Sandwich"}`)
	assert.Equal(t, true, r["success"])
	// Bread 45 + peanut butter 180.
	assert.Equal(t, 225, r["cart_total"])
	assert.Equal(t, 2, r["cart_size"])
}

func TestGroceryUpdateAndRemove(t *testing.T) {
	g, _ := newGroceryFixture(t)

	g.call("add_item_to_cart", `{"item_name":"milk","quantity":1}`)
	r := g.call("update_item_quantity", `{"item_name":"milk","quantity":3}`)
	assert.Equal(t, true, r["success"])
	assert.Equal(t, 180, r["cart_total"])

	r = g.call("remove_item_from_cart", `{"item_name":"milk"}`)
	assert.Equal(t, true, r["success"])
	assert.Equal(t, 0, r["cart_total"])

	r = g.call("remove_item_from_cart", `{"item_name":"milk"}`)
	assert.Equal(t, false, r["success"])
}

func TestGrocerySequentialOrderIDs(t *testing.T) {
	g, _ := newGroceryFixture(t)

	g.call("add_item_to_cart", `{"item_name":"chocolate"}`)
	first := g.call("place_order", `{}`)
	assert.Equal(t, 1, first["order_id"])

	g.call("add_item_to_cart", `{"item_name":"chips"}`)
	second := g.call("place_order", `{}`)
	assert.Equal(t, 2, second["order_id"])
}
