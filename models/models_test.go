package models

import (
	"testing"
)

func TestProfileDisplayName(t *testing.T) {
	name := "Jane Doe"
	empty := ""

	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"with name", Profile{FullName: &name}, "Jane Doe"},
		{"empty name", Profile{FullName: &empty}, "Anonymous"},
		{"nil name", Profile{}, "Anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidDietType(t *testing.T) {
	for _, valid := range []string{DietAny, DietVeg, DietNonVeg} {
		if !ValidDietType(valid) {
			t.Errorf("ValidDietType(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "all", "vegan", "VEG"} {
		if ValidDietType(invalid) {
			t.Errorf("ValidDietType(%q) = true, want false", invalid)
		}
	}
}

func TestValidBudget(t *testing.T) {
	for _, valid := range []string{BudgetLow, BudgetModerate, BudgetPremium} {
		if !ValidBudget(valid) {
			t.Errorf("ValidBudget(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "all", "cheap", "Premium"} {
		if ValidBudget(invalid) {
			t.Errorf("ValidBudget(%q) = true, want false", invalid)
		}
	}
}
