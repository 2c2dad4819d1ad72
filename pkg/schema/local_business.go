package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// LocalBusiness metadata keys. Address fields use the _business_address_
// prefix.
const (
	MetaBusinessTelephone    = "_business_telephone"
	MetaBusinessEmail        = "_business_email"
	MetaBusinessPriceRange   = "_business_price_range"
	MetaBusinessOpeningHours = "_business_opening_hours"
	MetaBusinessAddress      = "_business_address_"
	MetaBusinessLatitude     = "_business_latitude"
	MetaBusinessLongitude    = "_business_longitude"
)

// NewLocalBusiness returns the LocalBusiness generator.
func NewLocalBusiness() types.Generator {
	return newGenerator(definition{
		typeName:   TypeLocalBusiness,
		properties: localBusinessProperties,
		fields: []fieldMapping{
			{key: "telephone", metaKey: MetaBusinessTelephone},
			{key: "email", metaKey: MetaBusinessEmail},
			{key: "priceRange", metaKey: MetaBusinessPriceRange},
			{key: "openingHours", metaKey: MetaBusinessOpeningHours, convert: lineList},
		},
		nested: []nestedMapping{
			postalAddressMapping(MetaBusinessAddress),
			{
				key:      "geo",
				typeName: "GeoCoordinates",
				anchor:   "latitude",
				fields: []fieldMapping{
					{key: "latitude", metaKey: MetaBusinessLatitude},
					{key: "longitude", metaKey: MetaBusinessLongitude},
				},
			},
		},
	})
}

func localBusinessProperties() types.Properties {
	return types.Properties{
		nameProperty("Business name"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{Name: "telephone", Label: "Telephone", Kind: types.KindText},
		{Name: "email", Label: "Email", Kind: types.KindText},
		{Name: "priceRange", Label: "Price range", Description: "For example \"$$\".", Kind: types.KindText},
		{
			Name:        "openingHours",
			Label:       "Opening hours",
			Description: "One specification per line, e.g. \"Mo-Fr 09:00-17:00\".",
			Kind:        types.KindTextarea,
		},
		{
			Name:       "address",
			Label:      "Address",
			Kind:       types.KindObject,
			Required:   true,
			Properties: postalAddressProperties(true),
		},
		{
			Name:  "geo",
			Label: "Coordinates",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "latitude", Label: "Latitude", Kind: types.KindNumber, Required: true},
				{Name: "longitude", Label: "Longitude", Kind: types.KindNumber, Required: true},
			},
		},
	}
}
