package models

import (
	"slices"
	"time"
)

const DefaultSpecificationGroup = "General"

type Inventory struct {
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	TrackInventory    bool            `json:"trackInventory"`
	Status            InventoryStatus `json:"status"`
}

type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Slug        string   `json:"slug"`
}

// Draft is the product being authored in an open form. It never leaves the
// form session until it is assembled into a Product on submit.
type Draft struct {
	Name             string        `json:"name" validate:"notblank"`
	Description      string        `json:"description" validate:"notblank"`
	ShortDescription string        `json:"shortDescription"`
	SKU              string        `json:"sku" validate:"notblank"`
	Brand            string        `json:"brand" validate:"notblank"`
	Price            float64       `json:"price" validate:"gt=0"`
	CompareAtPrice   float64       `json:"compareAtPrice"`
	CategoryID       string        `json:"categoryId" validate:"required"`
	Inventory        Inventory     `json:"inventory"`
	SEO              SEO           `json:"seo"`
	Tags             []string      `json:"tags"`
	Featured         bool          `json:"featured"`
	Status           ProductStatus `json:"status"`
}

func NewDraft() Draft {
	return Draft{
		Inventory: Inventory{
			LowStockThreshold: 5,
			TrackInventory:    true,
			Status:            InventoryStatusInStock,
		},
		SEO:    SEO{Keywords: []string{}},
		Tags:   []string{},
		Status: ProductStatusActive,
	}
}

// Clone returns a copy that shares no slices with d.
func (d Draft) Clone() Draft {
	d.Tags = slices.Clone(d.Tags)
	d.SEO.Keywords = slices.Clone(d.SEO.Keywords)

	return d
}

type ImageEntry struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Alt      string    `json:"alt"`
	Position int       `json:"position"`
	Role     ImageRole `json:"type"`
}

type SpecificationEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Group string `json:"group"`
}

type CompatibilityEntry struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

type Video struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type Ratings struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution"`
}

func EmptyRatings() Ratings {
	return Ratings{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}

// Product is the persistable record sent to the store.
type Product struct {
	ID string `json:"id,omitempty"`
	Draft
	Category       *Category            `json:"category"`
	Images         []ImageEntry         `json:"images"`
	Specifications []SpecificationEntry `json:"specifications"`
	Compatibility  []CompatibilityEntry `json:"compatibility"`
	Videos         []Video              `json:"videos"`
	Ratings        Ratings              `json:"ratings"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}
