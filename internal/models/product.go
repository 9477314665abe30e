package models

const DefaultCategory = "general"

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// ProductList is the catalog as shown to one client; CanManage drives the
// admin-only affordances (edit, delete, add first product).
type ProductList struct {
	Products  []Product `json:"products"`
	CanManage bool      `json:"canManage"`
	Empty     bool      `json:"empty"`
}

type EditingProduct struct {
	ProductID int      `json:"productId"`
	Product   *Product `json:"product,omitempty"`
}

type ProductResponse struct {
	Product  *Product  `json:"product,omitempty"`
	Notice   *Notice   `json:"notice,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
}
