package domain

import (
	"fmt"

	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
)

// ItemKind is one of the orderable items on the menu.
type ItemKind string

const (
	Burger ItemKind = "burger"
	Fries  ItemKind = "fries"
	Drink  ItemKind = "drink"
)

// MaxQuantity caps a single line so totals stay far from integer overflow.
const MaxQuantity = 1000

// ItemKinds lists the catalog in display order.
var ItemKinds = []ItemKind{Burger, Fries, Drink}

// IsValid reports whether k belongs to the catalog.
func (k ItemKind) IsValid() bool {
	switch k {
	case Burger, Fries, Drink:
		return true
	}
	return false
}

// ParseItemKind validates a raw kind against the catalog.
func ParseItemKind(kind string) (ItemKind, error) {
	k := ItemKind(kind)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: invalid item type: %s", apperrors.ErrValidation, kind)
	}
	return k, nil
}

// OrderLine is a quantity of a single item kind.
type OrderLine struct {
	ItemType ItemKind `json:"item_type"`
	Quantity int      `json:"quantity"`
}

// Validate checks the line against the catalog and requires 1 <= quantity <= MaxQuantity.
func (l OrderLine) Validate() error {
	if _, err := ParseItemKind(string(l.ItemType)); err != nil {
		return err
	}
	if l.Quantity < 1 || l.Quantity > MaxQuantity {
		return fmt.Errorf("%w: invalid quantity: %d", apperrors.ErrValidation, l.Quantity)
	}
	return nil
}

// String renders the line as "{quantity} {kind}".
func (l OrderLine) String() string {
	return fmt.Sprintf("%d %s", l.Quantity, l.ItemType)
}

// ValidateLines validates every line in order and returns the first failure.
func ValidateLines(lines []OrderLine) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}
