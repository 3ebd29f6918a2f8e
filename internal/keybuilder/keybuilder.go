package keybuilder

import (
	"errors"
	"fmt"
	"strings"

	"go-variant-cache/internal/interfaces"
	"go-variant-cache/internal/models"
)

const (
	// optionValuesParam carries the ordered, comma-joined selected value ids.
	optionValuesParam = "option_values"
	// sectionParam requests the partial card/quick-add section rendering
	// instead of a full page.
	sectionParam = "section_id"
	// cardSectionID is the fixed rendering-mode value for card embeds.
	cardSectionID = "card-product"
)

// Ensure Builder implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*Builder)(nil)

// Builder derives the canonical request URL for an option selection. The URL
// is the cache key, so the same logical selection must always yield a
// byte-identical string.
type Builder struct{}

// New creates a new key Builder.
func New() interfaces.KeyBuilder {
	return &Builder{}
}

// Build creates the request URL for a selection and its context.
//
// The base product URL is replaced by the target value's connected-product
// URL (query stripped) when a combined-listing navigation is active. The
// query is assembled by hand rather than through url.Values so the value ids
// stay comma-joined and unescaped, byte-identical across calls.
func (b *Builder) Build(selection models.OptionSelection, buildCtx models.BuildContext) (string, error) {
	base := buildCtx.BaseURL
	if buildCtx.CrossProduct && buildCtx.TargetValue != nil && buildCtx.TargetValue.ConnectedProductURL != "" {
		base = buildCtx.TargetValue.ConnectedProductURL
	}
	if base == "" {
		return "", errors.New("base URL cannot be empty")
	}
	if len(selection.Options) == 0 {
		return "", errors.New("selection cannot be empty")
	}

	// Strip any query carried by the base or connected URL.
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}

	ids := selection.ValueIDs()
	for _, id := range ids {
		if id == "" {
			return "", errors.New("selection contains an empty value id")
		}
	}

	key := fmt.Sprintf("%s?%s=%s", base, optionValuesParam, strings.Join(ids, ","))
	if buildCtx.CardEmbed {
		key = fmt.Sprintf("%s&%s=%s", key, sectionParam, cardSectionID)
	}
	return key, nil
}
