package models

// DimensionKind classifies an option dimension for cache policy purposes.
type DimensionKind string

const (
	// DimensionKindColor marks a dimension whose label matches a color synonym.
	// Color changes are eligible for the cache-first partial update path.
	DimensionKindColor DimensionKind = "color"
	// DimensionKindOther marks every other dimension (size, material, ...).
	DimensionKindOther DimensionKind = "other"
)

// OptionValue is one selectable value within a dimension. Immutable once the
// product is parsed; a new product payload replaces values wholesale.
type OptionValue struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Dimension string `json:"dimension"`
	Available bool   `json:"available"`
	// Hidden is set by server-side availability rules (no stock for the
	// active combination, or no representative image). Hidden values are
	// navigable but never prefetched.
	Hidden bool `json:"hidden,omitempty"`
	// ConnectedProductURL is set on combined-listing values whose selection
	// navigates to a different underlying product.
	ConnectedProductURL string `json:"connected_product_url,omitempty"`
	// ImageURL is the representative swatch/media image, used by the image
	// preloader on card embeds.
	ImageURL string `json:"image_url,omitempty"`
	// Selected marks the initially chosen value in the incoming product
	// payload. Runtime selection state lives in the option model.
	Selected bool `json:"selected,omitempty"`
}

// Dimension is one independent axis of product configuration with its ordered
// values.
type Dimension struct {
	Name   string        `json:"name"`
	Values []OptionValue `json:"values"`
}

// Product is the parsed product configuration a session is created from.
type Product struct {
	ID         string      `json:"id"`
	URL        string      `json:"url"`
	Title      string      `json:"title,omitempty"`
	Dimensions []Dimension `json:"dimensions"`
}

// SelectedOption is one dimension's chosen value.
type SelectedOption struct {
	Dimension string
	ValueID   string
}

// OptionSelection is the full current selection, ordered by dimension order.
// At most one chosen value per dimension. Not persisted; recomputed on demand.
type OptionSelection struct {
	Options []SelectedOption
}

// ValueIDs returns the chosen value ids in dimension order.
func (s OptionSelection) ValueIDs() []string {
	ids := make([]string, 0, len(s.Options))
	for _, opt := range s.Options {
		ids = append(ids, opt.ValueID)
	}
	return ids
}

// With returns a copy of the selection with the given dimension's value
// replaced. Dimension order is preserved so derived keys stay deterministic.
func (s OptionSelection) With(dimension, valueID string) OptionSelection {
	out := OptionSelection{Options: make([]SelectedOption, len(s.Options))}
	copy(out.Options, s.Options)
	for i := range out.Options {
		if out.Options[i].Dimension == dimension {
			out.Options[i].ValueID = valueID
		}
	}
	return out
}

// BuildContext carries the request-key context that is not part of the
// selection itself.
type BuildContext struct {
	// BaseURL is the current product URL (path only, no query).
	BaseURL string
	// TargetValue is the changed or candidate value the key is built for.
	TargetValue *OptionValue
	// CrossProduct indicates an active combined-listing navigation: the
	// target value's connected product URL replaces the base URL.
	CrossProduct bool
	// CardEmbed requests the card/quick-add section rendering variant.
	CardEmbed bool
}
