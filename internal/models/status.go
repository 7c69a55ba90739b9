package models

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

type InventoryStatus string

const (
	InventoryStatusInStock    InventoryStatus = "in_stock"
	InventoryStatusLowStock   InventoryStatus = "low_stock"
	InventoryStatusOutOfStock InventoryStatus = "out_of_stock"
	InventoryStatusBackorder  InventoryStatus = "backorder"
)

type ImageRole string

const (
	ImageRoleMain    ImageRole = "main"
	ImageRoleGallery ImageRole = "gallery"
)
