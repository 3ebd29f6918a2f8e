package models

// VariantPayload is the variant-state document embedded in every rendered
// fragment. Its absence from an otherwise successful response is a server
// template contract break.
type VariantPayload struct {
	VariantID  string `json:"variant_id"`
	ProductID  string `json:"product_id"`
	ProductURL string `json:"product_url"`
	Available  bool   `json:"available"`
	Price      string `json:"price,omitempty"`
}

// Region names a reconcilable page region.
type Region string

const (
	// RegionPrimary is the page's primary content region, replaced wholesale
	// on cross-product navigation.
	RegionPrimary Region = "primary"
	// RegionPicker is the variant-selection control subtree, replaced in
	// place on partial updates.
	RegionPicker Region = "picker"
)

// ProductRef describes the product a cross-product navigation resolved to.
type ProductRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// VariantUpdatedEvent is emitted after a network-served update is applied so
// other page regions (pricing, imagery, availability) can react.
type VariantUpdatedEvent struct {
	Payload         VariantPayload `json:"payload"`
	ResolvedValueID string         `json:"resolved_value_id"`
	SourceMarkup    string         `json:"source_markup"`
	ProductID       string         `json:"product_id"`
	// NewProduct is set only when product identity changed.
	NewProduct *ProductRef `json:"new_product,omitempty"`
}
