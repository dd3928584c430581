package videos

import "strings"

// Category is the genre a video is filed under.
type Category string

// Categories lists every accepted category in display order.
var Categories = []Category{
	"Sci-Fi", "Adventure", "Sports", "Healthcare", "Anime", "Cartoon",
	"Politics", "News", "Entertainment", "Knowledge", "Gaming", "Movies",
	"TV Shows", "Vlogs", "Podcasts", "Tech", "Music", "Education", "Fashion",
	"Lifestyle", "Fitness", "Cooking", "DIY", "Business", "Finance", "Science",
	"Nature", "History", "Religion", "Culture", "Travel", "Food", "Documentary",
	"Comedy", "Drama", "Action", "Fantasy", "Calm",
	"Horror", "Thriller", "Romance", "Mystery", "Biography", "Crime", "Western",
	"Musical", "War", "Supernatural", "Family", "Animation", "Superhero", "Spy",
}

var categoryIndex = func() map[string]Category {
	idx := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		idx[strings.ToLower(string(c))] = c
	}
	return idx
}()

// ParseCategory matches a category name case-insensitively and returns its
// canonical spelling.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryIndex[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Valid reports whether c is one of the known categories, spelled canonically.
func (c Category) Valid() bool {
	canonical, ok := ParseCategory(string(c))
	return ok && canonical == c
}
