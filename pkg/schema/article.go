package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Article metadata keys.
const (
	MetaArticleDatePublished = "_article_date_published"
	MetaArticleDateModified  = "_article_date_modified"
	MetaArticleSection       = "_article_section"
	MetaArticleKeywords      = "_article_keywords"
	MetaArticleAuthor        = "_article_author"
	MetaArticleAuthorURL     = "_article_author_url"
	MetaArticlePublisher     = "_article_publisher"
	MetaArticlePublisherLogo = "_article_publisher_logo"
)

// NewArticle returns the Article generator.
func NewArticle() types.Generator {
	return newGenerator(definition{
		typeName:   TypeArticle,
		properties: articleProperties,
		fields: []fieldMapping{
			{key: "headline", fallback: entityTitle},
			{key: "datePublished", metaKey: MetaArticleDatePublished},
			{key: "dateModified", metaKey: MetaArticleDateModified},
			{key: "articleSection", metaKey: MetaArticleSection, fallback: firstCategory},
			{key: "keywords", metaKey: MetaArticleKeywords},
		},
		nested: []nestedMapping{
			{
				key:      "author",
				typeName: "Person",
				anchor:   "name",
				fields: []fieldMapping{
					{key: "name", metaKey: MetaArticleAuthor},
					{key: "url", metaKey: MetaArticleAuthorURL},
				},
			},
			{
				key:      "publisher",
				typeName: "Organization",
				anchor:   "name",
				fields: []fieldMapping{
					{key: "name", metaKey: MetaArticlePublisher},
					{key: "logo", metaKey: MetaArticlePublisherLogo},
				},
			},
		},
	})
}

func articleProperties() types.Properties {
	return types.Properties{
		nameProperty("Title"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{
			Name:        "headline",
			Label:       "Headline",
			Description: "Taken from the entry title.",
			Kind:        types.KindText,
			Required:    true,
		},
		{Name: "datePublished", Label: "Published", Kind: types.KindDate},
		{Name: "dateModified", Label: "Modified", Kind: types.KindDate},
		{Name: "articleSection", Label: "Section", Description: "Defaults to the first category of the entry.", Kind: types.KindText},
		{Name: "keywords", Label: "Keywords", Description: "Comma-separated.", Kind: types.KindText},
		{
			Name:     "author",
			Label:    "Author",
			Kind:     types.KindObject,
			Required: true,
			Properties: types.Properties{
				{Name: "name", Label: "Author name", Kind: types.KindText, Required: true},
				{Name: "url", Label: "Author URL", Kind: types.KindURL},
			},
		},
		{
			Name:  "publisher",
			Label: "Publisher",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "name", Label: "Publisher name", Kind: types.KindText, Required: true},
				{Name: "logo", Label: "Publisher logo", Kind: types.KindImage},
			},
		},
	}
}
