package options

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"go-variant-cache/internal/models"
)

// colorSynonyms is the locale-aware set of labels that classify a dimension
// as color-like, matched case-insensitively after trimming.
var colorSynonyms = map[string]struct{}{
	"color":   {},
	"colour":  {},
	"couleur": {}, // fr
	"colore":  {}, // it
	"farbe":   {}, // de
	"cor":     {}, // pt
	"kleur":   {}, // nl
	"farve":   {}, // da
	"kolor":   {}, // pl
}

// Model holds the selectable dimensions of one product and the currently
// chosen value per dimension. It never triggers fetches; side effects are
// limited to its own selection state.
type Model struct {
	logger *zap.Logger

	mu         sync.RWMutex
	product    models.Product
	dimensions []models.Dimension
	selected   map[string]string // dimension name -> chosen value id
	values     map[string]*models.OptionValue
}

// NewModel builds a Model from a parsed product. Values flagged Selected in
// the incoming payload seed the initial selection, one per dimension.
func NewModel(product models.Product, logger *zap.Logger) (*Model, error) {
	if len(product.Dimensions) == 0 {
		return nil, fmt.Errorf("product %q has no option dimensions", product.ID)
	}

	m := &Model{
		logger:     logger,
		product:    product,
		dimensions: product.Dimensions,
		selected:   make(map[string]string, len(product.Dimensions)),
		values:     make(map[string]*models.OptionValue),
	}

	for di := range m.dimensions {
		dim := &m.dimensions[di]
		for vi := range dim.Values {
			val := &dim.Values[vi]
			if val.Dimension == "" {
				val.Dimension = dim.Name
			}
			if _, dup := m.values[val.ID]; dup {
				return nil, fmt.Errorf("duplicate option value id %q", val.ID)
			}
			m.values[val.ID] = val
			if val.Selected {
				m.selected[dim.Name] = val.ID
			}
		}
		// Fall back to the first value so the selection invariant of one
		// chosen value per dimension holds from the start.
		if _, ok := m.selected[dim.Name]; !ok && len(dim.Values) > 0 {
			m.selected[dim.Name] = dim.Values[0].ID
		}
	}

	return m, nil
}

// Product returns the product the model was built from.
func (m *Model) Product() models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.product
}

// Selection returns the current selection in dimension order.
func (m *Model) Selection() models.OptionSelection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sel := models.OptionSelection{Options: make([]models.SelectedOption, 0, len(m.dimensions))}
	for _, dim := range m.dimensions {
		if id, ok := m.selected[dim.Name]; ok {
			sel.Options = append(sel.Options, models.SelectedOption{Dimension: dim.Name, ValueID: id})
		}
	}
	return sel
}

// DimensionKind classifies a dimension by its display label.
func (m *Model) DimensionKind(dimensionName string) models.DimensionKind {
	label := strings.ToLower(strings.TrimSpace(dimensionName))
	if _, ok := colorSynonyms[label]; ok {
		return models.DimensionKindColor
	}
	return models.DimensionKindOther
}

// IsColorChange reports whether the value that just changed belongs to a
// color-like dimension.
func (m *Model) IsColorChange(valueID string) bool {
	val, err := m.FindValue(valueID)
	if err != nil {
		return false
	}
	return m.DimensionKind(val.Dimension) == models.DimensionKindColor
}

// ApplySelection marks the given value id as chosen within its dimension,
// replacing any previously chosen value there.
func (m *Model) ApplySelection(valueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.values[valueID]
	if !ok {
		return fmt.Errorf("unknown option value id %q", valueID)
	}
	m.selected[val.Dimension] = valueID
	return nil
}

// FindValue looks up a value by id.
func (m *Model) FindValue(valueID string) (*models.OptionValue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.values[valueID]
	if !ok {
		return nil, fmt.Errorf("unknown option value id %q", valueID)
	}
	return val, nil
}

// SelectedValue returns the chosen value of the given dimension, or nil when
// the dimension does not exist.
func (m *Model) SelectedValue(dimensionName string) *models.OptionValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.selected[dimensionName]
	if !ok {
		return nil
	}
	return m.values[id]
}

// ValuesOf returns the values of the given dimension in declaration order, or
// nil when the dimension does not exist.
func (m *Model) ValuesOf(dimensionName string) []models.OptionValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, dim := range m.dimensions {
		if dim.Name == dimensionName {
			return dim.Values
		}
	}
	return nil
}

// ColorDimensions returns the color-like dimensions in declaration order.
func (m *Model) ColorDimensions() []models.Dimension {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var dims []models.Dimension
	for _, dim := range m.dimensions {
		if m.DimensionKind(dim.Name) == models.DimensionKindColor {
			dims = append(dims, dim)
		}
	}
	return dims
}
