package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/voicelab-go/agent-days/internal/cart"
	"github.com/voicelab-go/agent-days/internal/store"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

// recipes maps simple meal names to the catalog items they need.
var recipes = map[string][]string{
	"peanut butter sandwich": {"Whole Wheat Bread", "Peanut Butter (Large)"},
	"pasta for two":          {"Pasta Penne 500g", "Tomato Pasta Sauce Jar"},
	"simple pasta":           {"Pasta Penne 500g", "Tomato Pasta Sauce Jar"},
}

// Grocery is the food & grocery ordering persona: a catalog, an in-memory
// cart, and checkout into the orders file.
type Grocery struct {
	catalog *store.Catalog
	orders  *store.OrderStore
	cart    *cart.Cart
	logger  *slog.Logger
}

// NewGrocery builds the grocery ordering agent.
func NewGrocery(catalog *store.Catalog, orders *store.OrderStore, logger *slog.Logger) *agent.Agent {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Grocery{
		catalog: catalog,
		orders:  orders,
		cart:    cart.New(),
		logger:  logger.With("agent", "grocery"),
	}

	tools := agent.NewToolSet(
		agent.MakeTool("add_item_to_cart", "Add a specific item from the catalog to the cart.", g.addItemToCart),
		agent.MakeTool("add_recipe_to_cart", "Add the ingredients for a simple recipe (e.g. peanut butter sandwich, pasta for two).", g.addRecipeToCart),
		agent.MakeTool("remove_item_from_cart", "Remove an item from the cart by name.", g.removeItemFromCart),
		agent.MakeTool("update_item_quantity", "Update the quantity of an item in the cart; 0 or less removes it.", g.updateItemQuantity),
		agent.MakeTool("get_cart_summary", "Return the current cart contents and total amount.", g.getCartSummary),
		agent.MakeTool("place_order", "Place the current order and persist it.", g.placeOrder),
	)

	return &agent.Agent{
		Name:         "Grocery",
		Instructions: groceryInstructions,
		Tools:        tools,
		Greeting:     "Hi! I can help you order groceries, snacks and simple meal ingredients. What would you like?",
	}
}

const groceryInstructions = `You are a FOOD & GROCERY ORDERING VOICE ASSISTANT for a fictional quick-commerce store called "Blinkit".

YOUR GOAL:
- Help the user order groceries, snacks, and simple meal ingredients from a catalog.
- Maintain a cart in memory.
- When the user is done, confirm the order and place it (using tools).

CATALOG:
- You have access to a catalog via tools (you do NOT invent items that are clearly not present).
- Items include groceries (bread, eggs, milk, pasta, sauce), snacks (chips, chocolate), and prepared food (sandwiches, pizza).

CART BEHAVIOR:
- When the user asks for items (e.g. "add 2 milk and a bread"), call add_item_to_cart.
- When the user asks for "ingredients for X" (e.g. peanut butter sandwich), call add_recipe_to_cart.
- When the user wants to remove or change things, call remove_item_from_cart or update_item_quantity.
- When asked "what's in my cart", call get_cart_summary.

ORDER PLACEMENT:
- When the user says they are done (e.g. "that's all", "place my order", "checkout"):
  1. Use get_cart_summary to understand the cart.
  2. Confirm the final items and total verbally.
  3. Call place_order to persist the order.
  4. Tell the user the order has been placed.

STYLE:
- Friendly, concise, like a quick commerce app assistant.
- Ask clarifying questions if an item or quantity is ambiguous.
- Always confirm important cart changes.`

func (g *Grocery) addItemToCart(ctx context.Context, input struct {
	ItemName string `json:"item_name" desc:"Name or rough description of the item"`
	Quantity int    `json:"quantity,omitempty" desc:"How many units to add (default 1)"`
}) (any, error) {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	item, ok := g.catalog.FindItem(input.ItemName)
	if !ok {
		return failure(fmt.Sprintf("Could not find any item matching %q in the catalog.", input.ItemName)), nil
	}

	g.cart.Add(item, quantity)
	return success(fmt.Sprintf("Added %d x %s to the cart.", quantity, item.Name)).
		with("cart_size", g.cart.Size()).
		with("cart_total", g.cart.Total()), nil
}

func (g *Grocery) addRecipeToCart(ctx context.Context, input struct {
	RecipeName string `json:"recipe_name" desc:"Recipe name like 'peanut butter sandwich' or 'pasta for two'"`
	Servings   int    `json:"servings,omitempty" desc:"Optional serving multiplier"`
}) (any, error) {
	servings := input.Servings
	if servings < 1 {
		servings = 1
	}

	key := strings.ToLower(strings.TrimSpace(input.RecipeName))
	recipe, ok := recipes[key]
	if !ok {
		// Light normalization for common phrasings.
		switch {
		case strings.Contains(key, "peanut butter") && strings.Contains(key, "sandwich"):
			recipe = recipes["peanut butter sandwich"]
		case strings.Contains(key, "pasta") && strings.Contains(key, "two"):
			recipe = recipes["pasta for two"]
		case strings.Contains(key, "pasta"):
			recipe = recipes["simple pasta"]
		}
	}
	if len(recipe) == 0 {
		return failure(fmt.Sprintf("I don't have a recipe mapping for %q yet.", input.RecipeName)), nil
	}

	var added []string
	for _, name := range recipe {
		if item, ok := g.catalog.FindItem(name); ok {
			g.cart.Add(item, servings)
			added = append(added, item.Name)
		}
	}
	if len(added) == 0 {
		return failure(fmt.Sprintf("Recipe %q matched no items in the catalog.", input.RecipeName)), nil
	}

	return success(fmt.Sprintf("Added ingredients for %s: %s.", input.RecipeName, strings.Join(added, ", "))).
		with("cart_size", g.cart.Size()).
		with("cart_total", g.cart.Total()), nil
}

func (g *Grocery) removeItemFromCart(ctx context.Context, input struct {
	ItemName string `json:"item_name" desc:"The item to remove"`
}) (any, error) {
	item, ok := g.catalog.FindItem(input.ItemName)
	if !ok {
		return failure(fmt.Sprintf("Could not find any item matching %q to remove.", input.ItemName)), nil
	}
	if !g.cart.Remove(item.ID) {
		return failure(fmt.Sprintf("%q was not in the cart.", item.Name)), nil
	}
	return success(fmt.Sprintf("Removed %s from the cart.", item.Name)).
		with("cart_size", g.cart.Size()).
		with("cart_total", g.cart.Total()), nil
}

func (g *Grocery) updateItemQuantity(ctx context.Context, input struct {
	ItemName string `json:"item_name" desc:"The item to update"`
	Quantity int    `json:"quantity" desc:"New quantity; 0 or less removes the item"`
}) (any, error) {
	item, ok := g.catalog.FindItem(input.ItemName)
	if !ok {
		return failure(fmt.Sprintf("Could not find any item matching %q to update.", input.ItemName)), nil
	}

	var message string
	switch g.cart.Update(item, input.Quantity) {
	case cart.UpdateRemoved:
		message = fmt.Sprintf("Removed %s from the cart.", item.Name)
	case cart.UpdateSet:
		message = fmt.Sprintf("Updated %s quantity to %d.", item.Name, input.Quantity)
	case cart.UpdateAdded:
		message = fmt.Sprintf("%s was not in the cart, so I added %d.", item.Name, input.Quantity)
	case cart.UpdateNotInCart:
		return failure(fmt.Sprintf("%s was not in the cart.", item.Name)), nil
	}

	return success(message).
		with("cart_size", g.cart.Size()).
		with("cart_total", g.cart.Total()), nil
}

func (g *Grocery) getCartSummary(ctx context.Context, input struct{}) (any, error) {
	return result{
		"items": g.cart.Lines(),
		"total": g.cart.Total(),
	}, nil
}

func (g *Grocery) placeOrder(ctx context.Context, input struct {
	CustomerName string `json:"customer_name,omitempty" desc:"Optional free-text name"`
	DeliveryNote string `json:"delivery_note,omitempty" desc:"Optional delivery instructions or address text"`
}) (any, error) {
	if g.cart.Empty() {
		return failure("Your cart is empty. There is nothing to place."), nil
	}

	customer := input.CustomerName
	if customer == "" {
		customer = "Guest"
	}

	lines := g.cart.Lines()
	items := make([]store.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, store.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Category: line.Category,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	order := store.Order{
		OrderID:      g.orders.NextOrderID(),
		CreatedAt:    store.Timestamp(time.Now()),
		CustomerName: customer,
		DeliveryNote: input.DeliveryNote,
		Items:        items,
		Total:        g.cart.Total(),
		Status:       "placed",
	}

	// The write must succeed before the cart is cleared; a failed write
	// leaves the cart intact and aborts the turn.
	if err := g.orders.Append(order); err != nil {
		return nil, err
	}
	g.cart.Clear()

	g.logger.Info("order placed", "order_id", order.OrderID, "total", order.Total)
	return success(fmt.Sprintf("Order #%d has been placed.", order.OrderID)).
		with("order_id", order.OrderID).
		with("total", order.Total).
		with("created_at", order.CreatedAt), nil
}
