package llm

import "encoding/json"

const (
	toolPlaceOrder  = "place_order"
	toolCancelItems = "cancel_items"
)

// systemPrompt steers the model toward always answering with one tool call
// over the three-item menu.
const systemPrompt = `You are a drive-thru order processing assistant. Convert every customer request into exactly one function call. Never answer with plain text.

Menu item types:
- burger: burger, hamburger, cheeseburger
- fries: fries, fry, onion fries, curly fries, sweet potato fries ("fry" is always "fries")
- drink: any beverage (tea, coffee, water, juice, Coke, Pepsi, Sprite, ...)

Rules:
- Any mention of food or drinks to get is place_order; include every item mentioned in one items array.
- Quantity defaults to 1 ("a burger", "an order of fries" and "one burger" all mean 1).
- Cancelling specific food or drinks is cancel_items with items=[{"item_type": ..., "quantity": ...}].
- Cancelling an order by number ("cancel order 2", "cancel order #2") is cancel_items with items=[{"order_number": 2}].
- Cancelling everything ("cancel all orders", "cancel everything") is cancel_items with items=[{"cancel_all": true}].

Examples:
"I want a burger and a fry" -> place_order items=[{"item_type":"burger","quantity":1},{"item_type":"fries","quantity":1}]
"Can I get two cokes" -> place_order items=[{"item_type":"drink","quantity":2}]
"Cancel my drink" -> cancel_items items=[{"item_type":"drink","quantity":1}]
"Cancel order number 4" -> cancel_items items=[{"order_number":4}]
"I want to cancel everything" -> cancel_items items=[{"cancel_all":true}]`

var placeOrderSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "item_type": {"type": "string", "enum": ["burger", "fries", "drink"]},
          "quantity": {"type": "integer", "minimum": 1, "maximum": 1000}
        },
        "required": ["item_type", "quantity"]
      }
    }
  },
  "required": ["items"]
}`)

var cancelItemsSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "item_type": {"type": "string", "enum": ["burger", "fries", "drink"]},
          "quantity": {"type": "integer", "minimum": 1, "maximum": 1000},
          "order_number": {"type": "integer", "minimum": 1},
          "cancel_all": {"type": "boolean"}
        }
      }
    }
  },
  "required": ["items"]
}`)

func orderTools() []openaiTool {
	return []openaiTool{
		{
			Type: "function",
			Function: openaiToolDefinition{
				Name:        toolPlaceOrder,
				Description: "Place a new order with specified items",
				Parameters:  placeOrderSchema,
			},
		},
		{
			Type: "function",
			Function: openaiToolDefinition{
				Name:        toolCancelItems,
				Description: "Cancel specified items, a whole order by number, or all orders",
				Parameters:  cancelItemsSchema,
			},
		},
	}
}

// --- tool argument shapes ---

type lineArgs struct {
	ItemType string `json:"item_type" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type placeOrderArgs struct {
	Items []lineArgs `json:"items" validate:"required,min=1,dive"`
}

type cancelItemArgs struct {
	ItemType    string `json:"item_type"`
	Quantity    int    `json:"quantity"`
	OrderNumber *int   `json:"order_number"`
	CancelAll   bool   `json:"cancel_all"`
}

type cancelItemsArgs struct {
	Items []cancelItemArgs `json:"items" validate:"required"`
}
