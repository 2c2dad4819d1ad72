package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Descriptors shared by several types. Each call returns a fresh value so a
// caller mutating one Properties result cannot affect another.

func nameProperty(label string) types.Property {
	return types.Property{
		Name:        "name",
		Label:       label,
		Description: "Taken from the entry title.",
		Kind:        types.KindText,
		Required:    true,
	}
}

func descriptionProperty(required bool) types.Property {
	return types.Property{
		Name:        "description",
		Label:       "Description",
		Description: "Taken from the excerpt, or the content when there is no excerpt.",
		Kind:        types.KindTextarea,
		Required:    required,
	}
}

func urlProperty() types.Property {
	return types.Property{
		Name:        "url",
		Label:       "URL",
		Description: "Permalink of the entry.",
		Kind:        types.KindURL,
	}
}

func imageProperty() types.Property {
	return types.Property{
		Name:        "image",
		Label:       "Image",
		Description: "Featured image of the entry.",
		Kind:        types.KindImage,
	}
}

func availabilityOptions() types.Options {
	return types.Options{
		{Code: "InStock", Label: "In stock"},
		{Code: "OutOfStock", Label: "Out of stock"},
		{Code: "PreOrder", Label: "Pre-order"},
		{Code: "BackOrder", Label: "Back order"},
		{Code: "LimitedAvailability", Label: "Limited availability"},
		{Code: "SoldOut", Label: "Sold out"},
		{Code: "Discontinued", Label: "Discontinued"},
		{Code: "OnlineOnly", Label: "Online only"},
		{Code: "InStoreOnly", Label: "In store only"},
	}
}

// offerProperties describes an Offer. price and priceCurrency are always
// required once an offer is present.
func offerProperties(extra ...types.Property) types.Properties {
	props := types.Properties{
		{Name: "price", Label: "Price", Kind: types.KindNumber, Required: true},
		{
			Name:        "priceCurrency",
			Label:       "Currency",
			Description: "ISO 4217 code; EUR when left empty.",
			Kind:        types.KindText,
			Required:    true,
		},
	}
	return append(props, extra...)
}

func postalAddressProperties(required bool) types.Properties {
	return types.Properties{
		{Name: "streetAddress", Label: "Street address", Kind: types.KindText, Required: required},
		{Name: "addressLocality", Label: "City", Kind: types.KindText, Required: required},
		{Name: "addressRegion", Label: "Region", Kind: types.KindText},
		{Name: "postalCode", Label: "Postal code", Kind: types.KindText},
		{Name: "addressCountry", Label: "Country", Description: "ISO 3166-1 alpha-2 code.", Kind: types.KindText},
	}
}

// postalAddressMapping reads address fields from <prefix>street,
// <prefix>city, <prefix>region, <prefix>postal_code and <prefix>country.
// The object exists when any of them is set.
func postalAddressMapping(prefix string) nestedMapping {
	return nestedMapping{
		key:      "address",
		typeName: "PostalAddress",
		fields: []fieldMapping{
			{key: "streetAddress", metaKey: prefix + "street"},
			{key: "addressLocality", metaKey: prefix + "city"},
			{key: "addressRegion", metaKey: prefix + "region"},
			{key: "postalCode", metaKey: prefix + "postal_code"},
			{key: "addressCountry", metaKey: prefix + "country"},
		},
	}
}
