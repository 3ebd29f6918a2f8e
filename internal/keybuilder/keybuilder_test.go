package keybuilder

import (
	"testing"

	"go-variant-cache/internal/models"
)

func selectionOf(pairs ...[2]string) models.OptionSelection {
	sel := models.OptionSelection{}
	for _, p := range pairs {
		sel.Options = append(sel.Options, models.SelectedOption{Dimension: p[0], ValueID: p[1]})
	}
	return sel
}

func TestBuilder_Build(t *testing.T) {
	b := New()

	tests := []struct {
		name      string
		selection models.OptionSelection
		buildCtx  models.BuildContext
		wantKey   string
		wantError bool
	}{
		{
			name:      "basic selection",
			selection: selectionOf([2]string{"Color", "red-1"}, [2]string{"Size", "m-7"}),
			buildCtx:  models.BuildContext{BaseURL: "/products/shirt"},
			wantKey:   "/products/shirt?option_values=red-1,m-7",
		},
		{
			name:      "card embed appends section parameter",
			selection: selectionOf([2]string{"Color", "red-1"}, [2]string{"Size", "m-7"}),
			buildCtx:  models.BuildContext{BaseURL: "/products/shirt", CardEmbed: true},
			wantKey:   "/products/shirt?option_values=red-1,m-7&section_id=card-product",
		},
		{
			name:      "connected product substitution strips query",
			selection: selectionOf([2]string{"Color", "blue-2"}, [2]string{"Size", "m-7"}),
			buildCtx: models.BuildContext{
				BaseURL:      "/products/shirt",
				CrossProduct: true,
				TargetValue: &models.OptionValue{
					ID:                  "blue-2",
					ConnectedProductURL: "/products/shirt-blue?variant=99",
				},
			},
			wantKey: "/products/shirt-blue?option_values=blue-2,m-7",
		},
		{
			name:      "connected URL ignored without active cross-product navigation",
			selection: selectionOf([2]string{"Color", "blue-2"}, [2]string{"Size", "m-7"}),
			buildCtx: models.BuildContext{
				BaseURL: "/products/shirt",
				TargetValue: &models.OptionValue{
					ID:                  "blue-2",
					ConnectedProductURL: "/products/shirt-blue",
				},
			},
			wantKey: "/products/shirt?option_values=blue-2,m-7",
		},
		{
			name:      "base URL query stripped",
			selection: selectionOf([2]string{"Size", "m-7"}),
			buildCtx:  models.BuildContext{BaseURL: "/products/shirt?variant=12"},
			wantKey:   "/products/shirt?option_values=m-7",
		},
		{
			name:      "empty base URL",
			selection: selectionOf([2]string{"Size", "m-7"}),
			buildCtx:  models.BuildContext{},
			wantError: true,
		},
		{
			name:      "empty selection",
			selection: models.OptionSelection{},
			buildCtx:  models.BuildContext{BaseURL: "/products/shirt"},
			wantError: true,
		},
		{
			name:      "empty value id",
			selection: selectionOf([2]string{"Size", ""}),
			buildCtx:  models.BuildContext{BaseURL: "/products/shirt"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKey, gotErr := b.Build(tt.selection, tt.buildCtx)

			if tt.wantError {
				if gotErr == nil {
					t.Errorf("Build() expected error, but got none")
				}
				return
			}

			if gotErr != nil {
				t.Errorf("Build() unexpected error: %v", gotErr)
				return
			}
			if gotKey != tt.wantKey {
				t.Errorf("Build() gotKey = %v, want %v", gotKey, tt.wantKey)
			}
		})
	}
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	b := New()
	sel := selectionOf([2]string{"Color", "red-1"}, [2]string{"Size", "m-7"}, [2]string{"Material", "wool-3"})
	buildCtx := models.BuildContext{BaseURL: "/products/shirt"}

	first, err := b.Build(sel, buildCtx)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	for i := 0; i < 100; i++ {
		key, err := b.Build(sel, buildCtx)
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		if key != first {
			t.Fatalf("Build() not deterministic: %q != %q", key, first)
		}
	}
}

func TestBuilder_Build_SubstitutedSelectionSameKey(t *testing.T) {
	b := New()
	buildCtx := models.BuildContext{BaseURL: "/products/shirt"}

	direct := selectionOf([2]string{"Color", "blue-2"}, [2]string{"Size", "m-7"})
	derived := selectionOf([2]string{"Color", "red-1"}, [2]string{"Size", "m-7"}).With("Color", "blue-2")

	directKey, err := b.Build(direct, buildCtx)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	derivedKey, err := b.Build(derived, buildCtx)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if directKey != derivedKey {
		t.Errorf("equivalent selections produced different keys: %q vs %q", directKey, derivedKey)
	}
}
