package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// MetaFAQItems holds the questions of an FAQ page: a JSON array of
// {"question","answer"} objects or one "question|answer" pair per line.
const MetaFAQItems = "_faq_items"

// NewFAQPage returns the FAQPage generator.
func NewFAQPage() types.Generator {
	return newGenerator(definition{
		typeName:   TypeFAQPage,
		properties: faqPageProperties,
		fields: []fieldMapping{
			{key: "mainEntity", metaKey: MetaFAQItems, convert: faqQuestions},
		},
	})
}

func faqPageProperties() types.Properties {
	return types.Properties{
		nameProperty("Page title"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{
			Name:     "mainEntity",
			Label:    "Questions",
			Kind:     types.KindObject,
			Required: true,
			Properties: types.Properties{
				{Name: "name", Label: "Question", Kind: types.KindText, Required: true},
				{
					Name:     "acceptedAnswer",
					Label:    "Answer",
					Kind:     types.KindObject,
					Required: true,
					Properties: types.Properties{
						{Name: "text", Label: "Answer text", Kind: types.KindTextarea, Required: true},
					},
				},
			},
		},
	}
}
