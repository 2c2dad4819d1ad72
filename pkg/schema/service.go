package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Service metadata keys.
const (
	MetaServiceType              = "_service_type"
	MetaServiceAreaServed        = "_service_area_served"
	MetaServiceCategory          = "_service_category"
	MetaServiceProvider          = "_service_provider"
	MetaServiceProviderURL       = "_service_provider_url"
	MetaServiceProviderTelephone = "_service_provider_telephone"
	MetaServicePrice             = "_service_price"
	MetaServiceCurrency          = "_service_currency"
)

// NewService returns the Service generator.
func NewService() types.Generator {
	return newGenerator(definition{
		typeName:   TypeService,
		properties: serviceProperties,
		fields: []fieldMapping{
			{key: "serviceType", metaKey: MetaServiceType},
			{key: "areaServed", metaKey: MetaServiceAreaServed},
			{key: "category", metaKey: MetaServiceCategory, fallback: firstCategory},
		},
		nested: []nestedMapping{
			{
				key:      "provider",
				typeName: "Organization",
				anchor:   "name",
				fields: []fieldMapping{
					{key: "name", metaKey: MetaServiceProvider},
					{key: "url", metaKey: MetaServiceProviderURL},
					{key: "telephone", metaKey: MetaServiceProviderTelephone},
				},
			},
			{
				key:      "offers",
				typeName: "Offer",
				anchor:   "price",
				fields: []fieldMapping{
					{key: "price", metaKey: MetaServicePrice},
					{key: "priceCurrency", metaKey: MetaServiceCurrency, def: defaultCurrency},
				},
			},
		},
	})
}

func serviceProperties() types.Properties {
	return types.Properties{
		nameProperty("Service name"),
		descriptionProperty(true),
		urlProperty(),
		imageProperty(),
		{Name: "serviceType", Label: "Service type", Description: "The kind of service, e.g. \"Plumbing\".", Kind: types.KindText},
		{Name: "areaServed", Label: "Area served", Kind: types.KindText},
		{Name: "category", Label: "Category", Description: "Defaults to the first category of the entry.", Kind: types.KindText},
		{
			Name:  "provider",
			Label: "Provider",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "name", Label: "Provider name", Kind: types.KindText, Required: true},
				{Name: "url", Label: "Provider URL", Kind: types.KindURL},
				{Name: "telephone", Label: "Provider telephone", Kind: types.KindText},
			},
		},
		{
			Name:       "offers",
			Label:      "Offer",
			Kind:       types.KindObject,
			Properties: offerProperties(),
		},
	}
}
