package model

type ProductStatus string

const (
	StatusInStock    ProductStatus = "in_stock"
	StatusPreOrder   ProductStatus = "pre_order"
	StatusOnOrder    ProductStatus = "on_order" // legacy name of pre_order, still present in old rows
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// Color types for printing devices.
const (
	ColorTypeColor = "color"
	ColorTypeBW    = "bw"
)

type Product struct {
	BaseModel
	CategoryID int64         `db:"category_id" json:"category_id"`
	Name       string        `db:"name" json:"name"`
	Slug       string        `db:"slug" json:"slug"`
	Brand      string        `db:"brand" json:"brand"`
	Price      float64       `db:"price" json:"price"`
	Stock      int           `db:"stock" json:"stock"`
	Status     ProductStatus `db:"status" json:"status"`
	ColorType  *string       `db:"color_type" json:"color_type"` // Nullable, only for printers
	IsNew      bool          `db:"is_new" json:"is_new"`
	IsActive   bool          `db:"is_active" json:"is_active"`
	Specs      Specs         `db:"specs" json:"specs"`
}

// SpecEntry is a spec rendered for a detail page.
type SpecEntry struct {
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Value      SpecValue `json:"value"`
	Display    string    `json:"display"`
	OrderIndex int       `json:"order_index"`
}

type ProductSpecs struct {
	ProductID int64       `json:"product_id"`
	KeySpecs  []SpecEntry `json:"key_specs"`
	Specs     []SpecEntry `json:"specs"`
}
