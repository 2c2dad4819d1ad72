package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Recipe metadata keys. Ingredients and instructions hold one entry per line.
const (
	MetaRecipePrepTime     = "_recipe_prep_time"
	MetaRecipeCookTime     = "_recipe_cook_time"
	MetaRecipeTotalTime    = "_recipe_total_time"
	MetaRecipeYield        = "_recipe_yield"
	MetaRecipeCuisine      = "_recipe_cuisine"
	MetaRecipeCategory     = "_recipe_category"
	MetaRecipeIngredients  = "_recipe_ingredients"
	MetaRecipeInstructions = "_recipe_instructions"
	MetaRecipeAuthor       = "_recipe_author"
	MetaRecipeCalories     = "_recipe_calories"
)

// NewRecipe returns the Recipe generator.
func NewRecipe() types.Generator {
	return newGenerator(definition{
		typeName:   TypeRecipe,
		properties: recipeProperties,
		fields: []fieldMapping{
			{key: "prepTime", metaKey: MetaRecipePrepTime},
			{key: "cookTime", metaKey: MetaRecipeCookTime},
			{key: "totalTime", metaKey: MetaRecipeTotalTime},
			{key: "recipeYield", metaKey: MetaRecipeYield},
			{key: "recipeCuisine", metaKey: MetaRecipeCuisine},
			{key: "recipeCategory", metaKey: MetaRecipeCategory, fallback: firstCategory},
			{key: "recipeIngredient", metaKey: MetaRecipeIngredients, convert: lineList},
			{key: "recipeInstructions", metaKey: MetaRecipeInstructions, convert: howToSteps},
		},
		nested: []nestedMapping{
			{
				key:      "author",
				typeName: "Person",
				anchor:   "name",
				fields:   []fieldMapping{{key: "name", metaKey: MetaRecipeAuthor}},
			},
			{
				key:      "nutrition",
				typeName: "NutritionInformation",
				anchor:   "calories",
				fields:   []fieldMapping{{key: "calories", metaKey: MetaRecipeCalories}},
			},
		},
	})
}

func recipeProperties() types.Properties {
	return types.Properties{
		nameProperty("Recipe name"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{Name: "prepTime", Label: "Preparation time", Description: "ISO 8601 duration, e.g. PT15M.", Kind: types.KindText},
		{Name: "cookTime", Label: "Cooking time", Description: "ISO 8601 duration, e.g. PT1H.", Kind: types.KindText},
		{Name: "totalTime", Label: "Total time", Description: "ISO 8601 duration.", Kind: types.KindText},
		{Name: "recipeYield", Label: "Yield", Description: "For example \"4 servings\".", Kind: types.KindText},
		{Name: "recipeCuisine", Label: "Cuisine", Kind: types.KindText},
		{Name: "recipeCategory", Label: "Category", Description: "Defaults to the first category of the entry.", Kind: types.KindText},
		{
			Name:        "recipeIngredient",
			Label:       "Ingredients",
			Description: "One ingredient per line.",
			Kind:        types.KindTextarea,
			Required:    true,
		},
		{Name: "recipeInstructions", Label: "Instructions", Description: "One step per line.", Kind: types.KindTextarea},
		{
			Name:  "author",
			Label: "Author",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "name", Label: "Author name", Kind: types.KindText, Required: true},
			},
		},
		{
			Name:  "nutrition",
			Label: "Nutrition",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "calories", Label: "Calories", Description: "For example \"240 calories\".", Kind: types.KindText, Required: true},
			},
		},
	}
}
