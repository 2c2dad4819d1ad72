package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidKind(t *testing.T) {
	valid := []Kind{
		KindText, KindTextarea, KindImage, KindNumber,
		KindURL, KindDate, KindSelect, KindObject,
	}
	for _, k := range valid {
		if !IsValidKind(k) {
			t.Errorf("IsValidKind(%q) = false, want true", k)
		}
	}
	invalid := []Kind{"", "integer", "list", "Text"}
	for _, k := range invalid {
		if IsValidKind(k) {
			t.Errorf("IsValidKind(%q) = true, want false", k)
		}
	}
}

func TestPropertiesCheck(t *testing.T) {
	nested := Properties{{Name: "price", Label: "Price", Kind: KindNumber, Required: true}}
	options := Options{{Code: "InStock", Label: "In stock"}}

	tests := []struct {
		name  string
		props Properties
		ok    bool
	}{
		{"empty set", Properties{}, true},
		{"text property", Properties{{Name: "name", Kind: KindText}}, true},
		{"select with options", Properties{{Name: "availability", Kind: KindSelect, Options: options}}, true},
		{"object with properties", Properties{{Name: "offers", Kind: KindObject, Properties: nested}}, true},
		{"empty name", Properties{{Kind: KindText}}, false},
		{"duplicate name", Properties{{Name: "a", Kind: KindText}, {Name: "a", Kind: KindURL}}, false},
		{"unknown kind", Properties{{Name: "a", Kind: "list"}}, false},
		{"select without options", Properties{{Name: "a", Kind: KindSelect}}, false},
		{"options on text", Properties{{Name: "a", Kind: KindText, Options: options}}, false},
		{"object without properties", Properties{{Name: "a", Kind: KindObject}}, false},
		{"properties on text", Properties{{Name: "a", Kind: KindText, Properties: nested}}, false},
		{
			"invalid nested property",
			Properties{{Name: "offers", Kind: KindObject, Properties: Properties{{Name: "price", Kind: "money"}}}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.props.Check()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProperty), "error %v should wrap ErrInvalidProperty", err)
		})
	}
}

func TestPropertiesLookup(t *testing.T) {
	props := Properties{
		{Name: "name", Kind: KindText, Required: true},
		{Name: "sku", Kind: KindText},
		{Name: "offers", Kind: KindObject, Required: true, Properties: Properties{
			{Name: "price", Kind: KindNumber, Required: true},
		}},
	}

	p, ok := props.Get("offers")
	require.True(t, ok)
	assert.True(t, p.Required)
	assert.Equal(t, KindObject, p.Kind)

	_, ok = props.Get("gtin")
	assert.False(t, ok)

	assert.Equal(t, []string{"name", "sku", "offers"}, props.Names())
	assert.Equal(t, []string{"name", "offers"}, props.Required().Names())
}

func TestPropertiesMarshalJSONKeepsOrder(t *testing.T) {
	props := Properties{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
		{Name: "availability", Label: "Availability", Kind: KindSelect, Options: Options{
			{Code: "OutOfStock", Label: "Out of stock"},
			{Code: "InStock", Label: "In stock"},
		}},
		{Name: "brand", Label: "Brand", Kind: KindObject, Properties: Properties{
			{Name: "name", Label: "Brand name", Kind: KindText, Required: true},
		}},
	}

	got, err := props.MarshalJSON()
	require.NoError(t, err)

	want := `{"name":{"label":"Name","type":"text","required":true},` +
		`"availability":{"label":"Availability","type":"select","required":false,` +
		`"options":{"OutOfStock":"Out of stock","InStock":"In stock"}},` +
		`"brand":{"label":"Brand","type":"object","required":false,` +
		`"properties":{"name":{"label":"Brand name","type":"text","required":true}}}}`
	assert.JSONEq(t, want, string(got))
	assert.Equal(t, want, string(got), "keys must keep declared order")
}

func TestOptionsCodes(t *testing.T) {
	opts := Options{{Code: "a", Label: "A"}, {Code: "b", Label: "B"}}
	assert.Equal(t, []string{"a", "b"}, opts.Codes())
}
