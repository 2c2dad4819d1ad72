package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Organization metadata keys. Address fields use the
// _organization_address_ prefix.
const (
	MetaOrganizationLogo         = "_organization_logo"
	MetaOrganizationEmail        = "_organization_email"
	MetaOrganizationTelephone    = "_organization_telephone"
	MetaOrganizationFoundingDate = "_organization_founding_date"
	MetaOrganizationSameAs       = "_organization_same_as"
	MetaOrganizationAddress      = "_organization_address_"
)

// NewOrganization returns the Organization generator.
func NewOrganization() types.Generator {
	return newGenerator(definition{
		typeName:   TypeOrganization,
		properties: organizationProperties,
		fields: []fieldMapping{
			{key: "logo", metaKey: MetaOrganizationLogo},
			{key: "email", metaKey: MetaOrganizationEmail},
			{key: "telephone", metaKey: MetaOrganizationTelephone},
			{key: "foundingDate", metaKey: MetaOrganizationFoundingDate},
			{key: "sameAs", metaKey: MetaOrganizationSameAs, convert: lineList},
		},
		nested: []nestedMapping{
			postalAddressMapping(MetaOrganizationAddress),
		},
	})
}

func organizationProperties() types.Properties {
	return types.Properties{
		nameProperty("Organization name"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{Name: "logo", Label: "Logo", Kind: types.KindImage},
		{Name: "email", Label: "Email", Kind: types.KindText},
		{Name: "telephone", Label: "Telephone", Kind: types.KindText},
		{Name: "foundingDate", Label: "Founding date", Kind: types.KindDate},
		{Name: "sameAs", Label: "Profiles", Description: "One profile URL per line.", Kind: types.KindTextarea},
		{
			Name:       "address",
			Label:      "Address",
			Kind:       types.KindObject,
			Properties: postalAddressProperties(false),
		},
	}
}
