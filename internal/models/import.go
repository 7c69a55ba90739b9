package models

// ImportPayload is the listing shape produced by the marketplace import tool.
type ImportPayload struct {
	Name             string                `json:"name" validate:"max=300"`
	Description      string                `json:"description"`
	ShortDescription string                `json:"shortDescription"`
	SKU              string                `json:"sku" validate:"max=100"`
	Brand            string                `json:"brand" validate:"max=100"`
	Price            float64               `json:"price" validate:"gte=0"`
	CompareAtPrice   float64               `json:"compareAtPrice" validate:"gte=0"`
	Featured         bool                  `json:"featured"`
	Status           ProductStatus         `json:"status" validate:"omitempty,oneof=active inactive discontinued"`
	Tags             []string              `json:"tags" validate:"dive,max=64"`
	Inventory        ImportInventory       `json:"inventory"`
	SEO              ImportSEO             `json:"seo"`
	Images           []ImportImage         `json:"images" validate:"dive"`
	Specifications   []ImportSpecification `json:"specifications" validate:"dive"`
}

type ImportInventory struct {
	Quantity          int             `json:"quantity" validate:"gte=0"`
	LowStockThreshold int             `json:"lowStockThreshold" validate:"gte=0"`
	TrackInventory    bool            `json:"trackInventory"`
	Status            InventoryStatus `json:"status" validate:"omitempty,oneof=in_stock low_stock out_of_stock backorder"`
}

type ImportSEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords" validate:"dive,max=64"`
	Slug        string   `json:"slug" validate:"omitempty,max=200"`
}

type ImportImage struct {
	ID       string    `json:"id"`
	URL      string    `json:"url" validate:"required,url"`
	Alt      string    `json:"alt"`
	Position int       `json:"position" validate:"gte=0"`
	Role     ImageRole `json:"type" validate:"omitempty,oneof=main gallery"`
}

type ImportSpecification struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
	Group string `json:"group"`
}
