package views

import (
	"strings"

	"github.com/DineTogether/dining_backend/models"
)

// Filters narrows a list of request views client-side. Zero values match
// everything, as does the literal "all" for diet and budget.
type Filters struct {
	Search string
	Diet   string
	Budget string
}

// Match reports whether a single view passes all three predicates. The
// search term matches case-insensitively against restaurant name, location
// and cuisine type; diet and budget are exact matches.
func (f Filters) Match(v RequestView) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		cuisine := ""
		if v.CuisineType != nil {
			cuisine = *v.CuisineType
		}
		if !strings.Contains(strings.ToLower(v.RestaurantName), term) &&
			!strings.Contains(strings.ToLower(v.Location), term) &&
			!strings.Contains(strings.ToLower(cuisine), term) {
			return false
		}
	}

	if f.Diet != "" && f.Diet != "all" && v.DietType != f.Diet {
		return false
	}

	if f.Budget != "" && f.Budget != "all" && v.Budget != f.Budget {
		return false
	}

	return true
}

// Apply returns the views matching all predicates, preserving order
func (f Filters) Apply(list []RequestView) []RequestView {
	filtered := []RequestView{}
	for _, v := range list {
		if f.Match(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Valid reports whether the diet and budget values are usable as filters
func (f Filters) Valid() bool {
	if f.Diet != "" && f.Diet != "all" && !models.ValidDietType(f.Diet) {
		return false
	}
	if f.Budget != "" && f.Budget != "all" && !models.ValidBudget(f.Budget) {
		return false
	}
	return true
}
