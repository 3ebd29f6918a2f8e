package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-variant-cache/internal/models"
)

func testProduct() models.Product {
	return models.Product{
		ID:  "p1",
		URL: "/products/shirt",
		Dimensions: []models.Dimension{
			{Name: "Color", Values: []models.OptionValue{
				{ID: "red-1", Label: "Red", Available: true, Selected: true},
				{ID: "blue-2", Label: "Blue", Available: true},
			}},
			{Name: "Size", Values: []models.OptionValue{
				{ID: "m-7", Label: "M", Available: true},
				{ID: "l-8", Label: "L", Available: true},
			}},
		},
	}
}

func TestNewModel_SeedsSelection(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	sel := m.Selection()
	require.Len(t, sel.Options, 2)
	assert.Equal(t, "red-1", sel.Options[0].ValueID, "Selected flag seeds the color")
	assert.Equal(t, "m-7", sel.Options[1].ValueID, "first value is the fallback when nothing is flagged")
}

func TestNewModel_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
	}{
		{
			name:    "no dimensions",
			product: models.Product{ID: "p1"},
		},
		{
			name: "duplicate value id",
			product: models.Product{
				ID: "p1",
				Dimensions: []models.Dimension{
					{Name: "Color", Values: []models.OptionValue{
						{ID: "dup", Label: "Red"},
						{ID: "dup", Label: "Blue"},
					}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.product, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestDimensionKind_Synonyms(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name string
		want models.DimensionKind
	}{
		{"Color", models.DimensionKindColor},
		{"colour", models.DimensionKindColor},
		{"COULEUR", models.DimensionKindColor},
		{"  Farbe  ", models.DimensionKindColor},
		{"kleur", models.DimensionKindColor},
		{"Size", models.DimensionKindOther},
		{"Material", models.DimensionKindOther},
		{"", models.DimensionKindOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.DimensionKind(tt.name), tt.name)
	}
}

func TestIsColorChange(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, m.IsColorChange("blue-2"))
	assert.False(t, m.IsColorChange("l-8"))
	assert.False(t, m.IsColorChange("unknown"))
}

func TestApplySelection_SingleChoicePerDimension(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.ApplySelection("blue-2"))
	require.NoError(t, m.ApplySelection("l-8"))

	sel := m.Selection()
	require.Len(t, sel.Options, 2, "exactly one chosen value per dimension")
	assert.Equal(t, "blue-2", sel.Options[0].ValueID)
	assert.Equal(t, "l-8", sel.Options[1].ValueID)

	assert.Error(t, m.ApplySelection("unknown"))
}

func TestFindValue_AndSelectedValue(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	val, err := m.FindValue("blue-2")
	require.NoError(t, err)
	assert.Equal(t, "Blue", val.Label)
	assert.Equal(t, "Color", val.Dimension, "dimension is backfilled at construction")

	_, err = m.FindValue("missing")
	assert.Error(t, err)

	sel := m.SelectedValue("Color")
	require.NotNil(t, sel)
	assert.Equal(t, "red-1", sel.ID)
	assert.Nil(t, m.SelectedValue("Flavor"))
}

func TestValuesOf(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	values := m.ValuesOf("Size")
	require.Len(t, values, 2)
	assert.Equal(t, "m-7", values[0].ID)
	assert.Nil(t, m.ValuesOf("Flavor"))
}

func TestColorDimensions(t *testing.T) {
	m, err := NewModel(testProduct(), zap.NewNop())
	require.NoError(t, err)

	dims := m.ColorDimensions()
	require.Len(t, dims, 1)
	assert.Equal(t, "Color", dims[0].Name)
}
