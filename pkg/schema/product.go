package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Product metadata keys.
const (
	MetaProductSKU          = "_product_sku"
	MetaProductGTIN         = "_product_gtin"
	MetaProductMPN          = "_product_mpn"
	MetaProductColor        = "_product_color"
	MetaProductCategory     = "_product_category"
	MetaProductBrand        = "_product_brand"
	MetaProductPrice        = "_product_price"
	MetaProductCurrency     = "_product_currency"
	MetaProductAvailability = "_product_availability"
	MetaProductValidUntil   = "_product_price_valid_until"
	MetaProductOfferURL     = "_product_offer_url"
	MetaProductWeight       = "_product_weight"
	MetaProductWeightUnit   = "_product_weight_unit"
)

// NewProduct returns the Product generator.
func NewProduct() types.Generator {
	return newGenerator(definition{
		typeName:   TypeProduct,
		properties: productProperties,
		fields: []fieldMapping{
			{key: "sku", metaKey: MetaProductSKU},
			{key: "gtin", metaKey: MetaProductGTIN},
			{key: "mpn", metaKey: MetaProductMPN},
			{key: "color", metaKey: MetaProductColor},
			{key: "category", metaKey: MetaProductCategory, fallback: firstCategory},
		},
		nested: []nestedMapping{
			{
				key:      "brand",
				typeName: "Brand",
				anchor:   "name",
				fields:   []fieldMapping{{key: "name", metaKey: MetaProductBrand}},
			},
			{
				key:      "offers",
				typeName: "Offer",
				anchor:   "price",
				fields: []fieldMapping{
					{key: "price", metaKey: MetaProductPrice},
					{key: "priceCurrency", metaKey: MetaProductCurrency, def: defaultCurrency},
					{key: "availability", metaKey: MetaProductAvailability, convert: schemaURI},
					{key: "priceValidUntil", metaKey: MetaProductValidUntil},
					{key: "url", metaKey: MetaProductOfferURL},
				},
			},
			{
				key:      "weight",
				typeName: "QuantitativeValue",
				anchor:   "value",
				fields: []fieldMapping{
					{key: "value", metaKey: MetaProductWeight},
					{key: "unitCode", metaKey: MetaProductWeightUnit},
				},
			},
		},
	})
}

func productProperties() types.Properties {
	return types.Properties{
		nameProperty("Product name"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{Name: "sku", Label: "SKU", Description: "Merchant-specific identifier.", Kind: types.KindText},
		{Name: "gtin", Label: "GTIN", Description: "Global Trade Item Number (8, 12, 13 or 14 digits).", Kind: types.KindText},
		{Name: "mpn", Label: "MPN", Description: "Manufacturer part number.", Kind: types.KindText},
		{Name: "color", Label: "Color", Kind: types.KindText},
		{Name: "category", Label: "Category", Description: "Defaults to the first category of the entry.", Kind: types.KindText},
		{
			Name:  "brand",
			Label: "Brand",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "name", Label: "Brand name", Kind: types.KindText, Required: true},
			},
		},
		{
			Name:     "offers",
			Label:    "Offer",
			Kind:     types.KindObject,
			Required: true,
			Properties: offerProperties(
				types.Property{
					Name:    "availability",
					Label:   "Availability",
					Kind:    types.KindSelect,
					Options: availabilityOptions(),
				},
				types.Property{Name: "priceValidUntil", Label: "Price valid until", Kind: types.KindDate},
				types.Property{Name: "url", Label: "Offer URL", Kind: types.KindURL},
			),
		},
		{
			Name:  "weight",
			Label: "Weight",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "value", Label: "Weight", Kind: types.KindNumber, Required: true},
				{
					Name:  "unitCode",
					Label: "Unit",
					Kind:  types.KindSelect,
					Options: types.Options{
						{Code: "KGM", Label: "Kilogram"},
						{Code: "GRM", Label: "Gram"},
						{Code: "LBR", Label: "Pound"},
						{Code: "ONZ", Label: "Ounce"},
					},
				},
			},
		},
	}
}
