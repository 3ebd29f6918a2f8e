// Package fragment extracts the structured pieces the engine needs out of
// rendered markup: the primary content region, the variant-picker subtree and
// the embedded variant-state payload. Missing structure is a server template
// contract break and fails loudly.
package fragment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-variant-cache/internal/models"
)

var (
	// ErrNoRegion is returned when a full-page response carries no primary
	// content region.
	ErrNoRegion = errors.New("fragment: no primary content region in response")
	// ErrNoPicker is returned when a fragment carries no variant-picker
	// subtree.
	ErrNoPicker = errors.New("fragment: no variant picker subtree in fragment")
	// ErrNoPayload is returned when a fragment carries no embedded
	// variant-state payload.
	ErrNoPayload = errors.New("fragment: no variant state payload in fragment")
)

const (
	mainOpen   = "<main"
	mainClose  = "</main>"
	htmlMarker = "<html"

	pickerOpen  = "<variant-picker"
	pickerClose = "</variant-picker>"

	payloadOpen  = `<script type="application/json" data-variant-state>`
	payloadClose = "</script>"

	// initialRenderAttr is server-injected on first render only and must be
	// stripped before any subsequent merge.
	initialRenderAttr = "data-initial-render"
)

// PrimaryRegion extracts the primary content region from a response body.
// Full pages carry it as the <main> element (inclusive); section responses
// (card/quick-add rendering) are the region themselves.
func PrimaryRegion(body []byte) ([]byte, error) {
	doc := string(body)

	if start := strings.Index(doc, mainOpen); start >= 0 {
		end := strings.Index(doc[start:], mainClose)
		if end < 0 {
			return nil, ErrNoRegion
		}
		return []byte(doc[start : start+end+len(mainClose)]), nil
	}

	// A section response has no document frame; the whole body is the
	// region. A framed page without <main> is structurally broken.
	if strings.Contains(doc, htmlMarker) {
		return nil, ErrNoRegion
	}
	if strings.TrimSpace(doc) == "" {
		return nil, ErrNoRegion
	}
	return body, nil
}

// PickerRegion extracts the variant-picker subtree (inclusive) from a
// fragment.
func PickerRegion(fragment []byte) ([]byte, error) {
	doc := string(fragment)

	start := strings.Index(doc, pickerOpen)
	if start < 0 {
		return nil, ErrNoPicker
	}
	end := strings.Index(doc[start:], pickerClose)
	if end < 0 {
		return nil, ErrNoPicker
	}
	return []byte(doc[start : start+end+len(pickerClose)]), nil
}

// Payload parses the variant-state document embedded in a fragment.
func Payload(fragment []byte) (models.VariantPayload, error) {
	doc := string(fragment)

	start := strings.Index(doc, payloadOpen)
	if start < 0 {
		return models.VariantPayload{}, ErrNoPayload
	}
	start += len(payloadOpen)
	end := strings.Index(doc[start:], payloadClose)
	if end < 0 {
		return models.VariantPayload{}, ErrNoPayload
	}

	var payload models.VariantPayload
	if err := json.Unmarshal([]byte(doc[start:start+end]), &payload); err != nil {
		return models.VariantPayload{}, fmt.Errorf("fragment: malformed variant state payload: %w", err)
	}
	return payload, nil
}

// StripInitialRenderFlag removes the initial-render-only attribute from
// markup before it is merged, so the flag is never reapplied on updates.
func StripInitialRenderFlag(markup []byte) []byte {
	doc := string(markup)
	for {
		idx := strings.Index(doc, initialRenderAttr)
		if idx < 0 {
			break
		}

		end := idx + len(initialRenderAttr)
		// Swallow an attached ="value" or ='value'.
		if end < len(doc) && doc[end] == '=' {
			end++
			if end < len(doc) && (doc[end] == '"' || doc[end] == '\'') {
				quote := doc[end]
				end++
				for end < len(doc) && doc[end] != quote {
					end++
				}
				if end < len(doc) {
					end++
				}
			} else {
				for end < len(doc) && doc[end] != ' ' && doc[end] != '>' {
					end++
				}
			}
		}
		// Swallow the leading separator space.
		start := idx
		if start > 0 && doc[start-1] == ' ' {
			start--
		}
		doc = doc[:start] + doc[end:]
	}
	return []byte(doc)
}
