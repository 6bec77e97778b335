package domain

// Item is a catalog listing as returned by GET /api/items.
// Field names follow the backend's JSON contract.
type Item struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"items_name" db:"items_name"`
	Category    string  `json:"category" db:"category"`
	Description string  `json:"description" db:"description"`
	Stock       int     `json:"stock" db:"stock"`
	Price       float64 `json:"price" db:"price"`
	SellerName  string  `json:"seller_name" db:"seller_name"`
	CreatedAt   string  `json:"created_at" db:"created_at"`
	UpdatedAt   string  `json:"updated_at" db:"updated_at"`
}

// Key is the identity of an item. Two snapshots of the same listing
// (e.g. before and after a stock change) share a Key even when every
// other field differs, so Key is what cart and wishlist index by.
func (it Item) Key() int { return it.ID }

// SameItem reports whether a and b refer to the same listing.
// Only the identifier participates; no other field is compared.
func SameItem(a, b Item) bool { return a.ID == b.ID }

// SellRequest is the payload for POST /api/items. A listing being
// created has no id yet, so it is never compared against catalog items.
type SellRequest struct {
	Name        string  `json:"items_name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
}

// Category filter values offered by the home screen. CategoryAll is the
// identity filter; the rest match the item's category field
// case-insensitively.
const (
	CategoryAll        = "All"
	CategoryClothes    = "Clothes"
	CategoryStationery = "Stationery"
	CategoryFurniture  = "Furniture"
	CategoryElectronic = "Electronic"
)

// Categories returns the filter set in display order.
func Categories() []string {
	return []string{CategoryAll, CategoryClothes, CategoryStationery, CategoryFurniture, CategoryElectronic}
}
