package models

// Product is a catalog item. Prices are stored in paise to avoid floating
// point money.
type Product struct {
	Meta
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PricePaise  int64  `json:"pricePaise"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl"`
	Active      bool   `json:"active"`
}

func (p *Product) OwnerID() string { return p.UserID }
