package club

// categoryLevels maps the club categories to a numeric level. Every
// category currently sits on the same level, so entry is never restricted.
var categoryLevels = map[string]int{
	"promesas": 1,
	"cobre":    1,
	"bronce":   1,
	"plata":    1,
	"oro":      1,
	"diamante": 1,
}

// DefaultCategory is assumed for members without one.
const DefaultCategory = "promesas"

// KnownCategory reports whether c is a club category.
func KnownCategory(c string) bool {
	_, ok := categoryLevels[c]
	return ok
}

// CategoryLevel returns the level of a category. Unknown and empty
// categories get the lowest level.
func CategoryLevel(c string) int {
	if lvl, ok := categoryLevels[c]; ok {
		return lvl
	}
	return categoryLevels[DefaultCategory]
}

// LevelPermits reports whether a player of playerCategory may join a match of matchCategory.
func LevelPermits(playerCategory, matchCategory string) bool {
	if playerCategory == "" {
		playerCategory = DefaultCategory
	}
	return CategoryLevel(playerCategory) >= CategoryLevel(matchCategory)
}
