package catalogue

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	wantCats := []string{"Monitor 24 inch", "Monitor 27 inch", "Monitor 32 inch"}
	if diff := cmp.Diff(wantCats, c.CategoryNames()); diff != "" {
		t.Errorf("CategoryNames() mismatch (-want +got):\n%s", diff)
	}
	if got := len(c.FieldNames()); got != 22 {
		t.Errorf("len(FieldNames()) = %d, want 22", got)
	}
	if got := c.FieldNames()[0]; got != "Diagonala ecran" {
		t.Errorf("first field = %q, want declaration order", got)
	}

	v, ok := c.Value("Monitor 24 inch", "Rezolutie")
	if !ok || v != "1920x1080 Full HD" {
		t.Errorf("Value(24, Rezolutie) = %q, %v", v, ok)
	}
	if _, ok := c.Value("Monitor 32 inch", "Pivotare"); ok {
		t.Error("Monitor 32 inch should not list Pivotare")
	}
	if _, ok := c.Value("Monitor 49 inch", "Rezolutie"); ok {
		t.Error("unknown category should not resolve")
	}
}

func TestCatalogue_Specs(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	got := c.Specs(Selection{
		Categories: []string{"Monitor 32 inch", "Monitor 24 inch"},
		Fields:     []string{"Pivotare", "Rata refresh"},
	})
	want := []Spec{
		{Category: "Monitor 32 inch", Field: "Rata refresh", Value: "60Hz minim"},
		{Category: "Monitor 24 inch", Field: "Pivotare", Value: "90°"},
		{Category: "Monitor 24 inch", Field: "Rata refresh", Value: "100 Hz"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Specs() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogue_Validate(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		sel  Selection
		want error
	}{
		{"ok", Selection{Categories: []string{"Monitor 27 inch"}, Fields: []string{"Culori"}}, nil},
		{"unknown category", Selection{Categories: []string{"TV"}, Fields: []string{"Culori"}}, ErrUnknownCategory},
		{"unknown field", Selection{Categories: []string{"Monitor 27 inch"}, Fields: []string{"Pret"}}, ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Validate(tt.sel)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_RejectsUndeclaredField(t *testing.T) {
	data := []byte(`
fields:
  - { name: "Rezolutie", icon: "x" }
categories:
  - name: "Monitor"
    specs:
      "Greutate": "5 kg"
`)
	if _, err := Load(data); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Load() error = %v, want ErrUnknownField", err)
	}
}

func TestCategories_ReturnsCopies(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cats := c.Categories()
	cats[0].Specs["Rezolutie"] = "changed"
	if v, _ := c.Value("Monitor 24 inch", "Rezolutie"); v != "1920x1080 Full HD" {
		t.Errorf("catalogue mutated through Categories(): %q", v)
	}
}
