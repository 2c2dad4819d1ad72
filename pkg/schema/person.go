package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Person metadata keys.
const (
	MetaPersonJobTitle    = "_person_job_title"
	MetaPersonEmail       = "_person_email"
	MetaPersonTelephone   = "_person_telephone"
	MetaPersonBirthDate   = "_person_birth_date"
	MetaPersonSameAs      = "_person_same_as"
	MetaPersonWorksFor    = "_person_works_for"
	MetaPersonWorksForURL = "_person_works_for_url"
)

// NewPerson returns the Person generator.
func NewPerson() types.Generator {
	return newGenerator(definition{
		typeName:   TypePerson,
		properties: personProperties,
		fields: []fieldMapping{
			{key: "jobTitle", metaKey: MetaPersonJobTitle},
			{key: "email", metaKey: MetaPersonEmail},
			{key: "telephone", metaKey: MetaPersonTelephone},
			{key: "birthDate", metaKey: MetaPersonBirthDate},
			{key: "sameAs", metaKey: MetaPersonSameAs, convert: lineList},
		},
		nested: []nestedMapping{
			{
				key:      "worksFor",
				typeName: "Organization",
				anchor:   "name",
				fields: []fieldMapping{
					{key: "name", metaKey: MetaPersonWorksFor},
					{key: "url", metaKey: MetaPersonWorksForURL},
				},
			},
		},
	})
}

func personProperties() types.Properties {
	return types.Properties{
		nameProperty("Full name"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{Name: "jobTitle", Label: "Job title", Kind: types.KindText},
		{Name: "email", Label: "Email", Kind: types.KindText},
		{Name: "telephone", Label: "Telephone", Kind: types.KindText},
		{Name: "birthDate", Label: "Birth date", Kind: types.KindDate},
		{Name: "sameAs", Label: "Profiles", Description: "One profile URL per line.", Kind: types.KindTextarea},
		{
			Name:  "worksFor",
			Label: "Works for",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "name", Label: "Organization name", Kind: types.KindText, Required: true},
				{Name: "url", Label: "Organization URL", Kind: types.KindURL},
			},
		},
	}
}
