package views

import (
	"testing"

	"github.com/DineTogether/dining_backend/models"
)

func filterFixtures() []RequestView {
	mk := func(id, name, location, cuisine, diet, budget string) RequestView {
		return RequestView{
			DiningRequest: models.DiningRequest{
				ID:             id,
				RestaurantName: name,
				Location:       location,
				CuisineType:    strPtr(cuisine),
				DietType:       diet,
				Budget:         budget,
			},
		}
	}
	return []RequestView{
		mk("req-1", "The Italian Kitchen", "Downtown", "Italian", models.DietVeg, models.BudgetModerate),
		mk("req-2", "Sushi Palace", "Main Street", "Japanese", models.DietNonVeg, models.BudgetPremium),
		mk("req-3", "Green Bowl", "Downtown", "Salads", models.DietVeg, models.BudgetLow),
		mk("req-4", "Curry House", "Uptown", "Indian", models.DietAny, models.BudgetModerate),
	}
}

func TestFiltersMatch(t *testing.T) {
	list := filterFixtures()

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "no filters matches everything",
			filters: Filters{},
			want:    []string{"req-1", "req-2", "req-3", "req-4"},
		},
		{
			name:    "search matches restaurant name case-insensitively",
			filters: Filters{Search: "sushi"},
			want:    []string{"req-2"},
		},
		{
			name:    "search matches location",
			filters: Filters{Search: "downtown"},
			want:    []string{"req-1", "req-3"},
		},
		{
			name:    "search matches cuisine type",
			filters: Filters{Search: "indian"},
			want:    []string{"req-4"},
		},
		{
			name:    "diet filter is an exact match",
			filters: Filters{Diet: models.DietVeg},
			want:    []string{"req-1", "req-3"},
		},
		{
			name:    "diet all matches everything",
			filters: Filters{Diet: "all"},
			want:    []string{"req-1", "req-2", "req-3", "req-4"},
		},
		{
			name:    "budget filter is an exact match",
			filters: Filters{Budget: models.BudgetModerate},
			want:    []string{"req-1", "req-4"},
		},
		{
			name:    "all predicates combine as an intersection",
			filters: Filters{Search: "downtown", Diet: models.DietVeg, Budget: models.BudgetLow},
			want:    []string{"req-3"},
		},
		{
			name:    "no match",
			filters: Filters{Search: "pizza"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filters.Apply(list))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFiltersOrderIndependent(t *testing.T) {
	// Applying the predicates one at a time, in any order, yields the same
	// result as applying them all at once
	list := filterFixtures()

	combined := Filters{Search: "downtown", Diet: models.DietVeg, Budget: models.BudgetLow}
	allAtOnce := ids(combined.Apply(list))

	orders := [][]Filters{
		{{Search: "downtown"}, {Diet: models.DietVeg}, {Budget: models.BudgetLow}},
		{{Budget: models.BudgetLow}, {Search: "downtown"}, {Diet: models.DietVeg}},
		{{Diet: models.DietVeg}, {Budget: models.BudgetLow}, {Search: "downtown"}},
	}

	for i, order := range orders {
		result := list
		for _, f := range order {
			result = f.Apply(result)
		}
		got := ids(result)
		if len(got) != len(allAtOnce) {
			t.Fatalf("order %d: got %v, want %v", i, got, allAtOnce)
		}
		for j := range got {
			if got[j] != allAtOnce[j] {
				t.Fatalf("order %d: got %v, want %v", i, got, allAtOnce)
			}
		}
	}
}

func TestFiltersValid(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"empty", Filters{}, true},
		{"all sentinels", Filters{Diet: "all", Budget: "all"}, true},
		{"known values", Filters{Diet: models.DietVeg, Budget: models.BudgetPremium}, true},
		{"unknown diet", Filters{Diet: "pescatarian"}, false},
		{"unknown budget", Filters{Budget: "free"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
