package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// minimalEntity has the fields every generator reads directly and no
// metadata at all.
func minimalEntity() *types.Entity {
	return &types.Entity{
		ID:         "e-1",
		Title:      "Widget",
		RawContent: "A widget.",
		Permalink:  "https://x/w",
	}
}

// fullEntity sets every metadata key the built-in generators read.
func fullEntity() *types.Entity {
	e := minimalEntity()
	e.Excerpt = "Short summary."
	e.ThumbnailURL = "https://x/w.jpg"
	e.Categories = []string{"Tools", "Garden"}
	e.Meta = map[string]string{
		MetaProductSKU:          "W-1",
		MetaProductGTIN:         "4006381333931",
		MetaProductMPN:          "MPN-1",
		MetaProductColor:        "Red",
		MetaProductCategory:     "Hardware",
		MetaProductBrand:        "Acme",
		MetaProductPrice:        "19.99",
		MetaProductCurrency:     "USD",
		MetaProductAvailability: "InStock",
		MetaProductValidUntil:   "2027-01-01",
		MetaProductOfferURL:     "https://x/w/buy",
		MetaProductWeight:       "1.5",
		MetaProductWeightUnit:   "KGM",

		MetaServiceType:              "Plumbing",
		MetaServiceAreaServed:        "Berlin",
		MetaServiceCategory:          "Home",
		MetaServiceProvider:          "Acme Services",
		MetaServiceProviderURL:       "https://acme.example",
		MetaServiceProviderTelephone: "+49 30 1234",
		MetaServicePrice:             "80",
		MetaServiceCurrency:          "EUR",

		MetaOrganizationLogo:                   "https://acme.example/logo.png",
		MetaOrganizationEmail:                  "info@acme.example",
		MetaOrganizationTelephone:              "+49 30 1234",
		MetaOrganizationFoundingDate:           "1999-05-01",
		MetaOrganizationSameAs:                 "https://social.example/acme\nhttps://video.example/acme",
		MetaOrganizationAddress + "street":      "Main St 1",
		MetaOrganizationAddress + "city":        "Berlin",
		MetaOrganizationAddress + "region":      "BE",
		MetaOrganizationAddress + "postal_code": "10115",
		MetaOrganizationAddress + "country":     "DE",

		MetaBusinessTelephone:               "+49 30 5678",
		MetaBusinessEmail:                   "shop@acme.example",
		MetaBusinessPriceRange:              "$$",
		MetaBusinessOpeningHours:            "Mo-Fr 09:00-17:00\nSa 10:00-14:00",
		MetaBusinessAddress + "street":      "Market 2",
		MetaBusinessAddress + "city":        "Hamburg",
		MetaBusinessAddress + "postal_code": "20095",
		MetaBusinessAddress + "country":     "DE",
		MetaBusinessLatitude:                "53.55",
		MetaBusinessLongitude:               "9.99",

		MetaPersonJobTitle:    "Engineer",
		MetaPersonEmail:       "jo@acme.example",
		MetaPersonTelephone:   "+49 30 9999",
		MetaPersonBirthDate:   "1980-02-03",
		MetaPersonSameAs:      "https://social.example/jo",
		MetaPersonWorksFor:    "Acme",
		MetaPersonWorksForURL: "https://acme.example",

		MetaEventStartDate:       "2027-03-01T19:00",
		MetaEventEndDate:         "2027-03-01T23:00",
		MetaEventStatus:          "EventScheduled",
		MetaEventAttendanceMode:  "OfflineEventAttendanceMode",
		MetaEventLocation:        "Town Hall",
		MetaEventLocationAddress: "Main St 1, Berlin",
		MetaEventOrganizer:       "Acme",
		MetaEventOrganizerURL:    "https://acme.example",
		MetaEventPrice:           "25",
		MetaEventAvailability:    "InStock",
		MetaEventTicketURL:       "https://x/tickets",
		MetaEventValidFrom:       "2027-01-01",

		MetaArticleDatePublished: "2026-10-01",
		MetaArticleDateModified:  "2026-10-02",
		MetaArticleSection:       "News",
		MetaArticleKeywords:      "widgets, tools",
		MetaArticleAuthor:        "Jo Doe",
		MetaArticleAuthorURL:     "https://x/authors/jo",
		MetaArticlePublisher:     "Acme Media",
		MetaArticlePublisherLogo: "https://acme.example/media.png",

		MetaRecipePrepTime:     "PT15M",
		MetaRecipeCookTime:     "PT1H",
		MetaRecipeTotalTime:    "PT1H15M",
		MetaRecipeYield:        "4 servings",
		MetaRecipeCuisine:      "Italian",
		MetaRecipeCategory:     "Dinner",
		MetaRecipeIngredients:  "2 eggs\n100 g flour",
		MetaRecipeInstructions: "Mix.\nBake.",
		MetaRecipeAuthor:       "Jo Doe",
		MetaRecipeCalories:     "240 calories",

		MetaFAQItems: `[{"question":"Is it red?","answer":"Yes."},{"question":"Is it big?","answer":"No."}]`,
	}
	return e
}

// builtinGenerators returns one instance of every built-in generator.
func builtinGenerators(t *testing.T) []*generator {
	t.Helper()
	ctors := []Constructor{
		NewProduct, NewService, NewOrganization, NewLocalBusiness,
		NewPerson, NewEvent, NewArticle, NewRecipe, NewFAQPage,
	}
	out := make([]*generator, 0, len(ctors))
	for _, ctor := range ctors {
		g, ok := ctor().(*generator)
		require.True(t, ok)
		out = append(out, g)
	}
	return out
}
