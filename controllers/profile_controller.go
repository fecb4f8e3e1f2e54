package controllers

import (
	"errors"
	"net/http"

	"github.com/DineTogether/dining_backend/database"
	"github.com/DineTogether/dining_backend/models"
	"github.com/DineTogether/dining_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveProfileInput struct {
	FullName         string `json:"full_name" example:"Jane Doe"`
	DietPreference   string `json:"diet_preference" example:"veg"`
	BudgetPreference string `json:"budget_preference" example:"moderate"`
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Description Returns the user's dining profile; a missing row yields defaults, not an error
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/profile [get]
func GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var profile models.Profile
	err := database.DB.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No row yet: serve the defaults the first save would write
		profile = models.Profile{
			UserID:           userID,
			DietPreference:   models.DietAny,
			BudgetPreference: models.BudgetModerate,
		}
	} else if err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrGeneric, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SaveProfile godoc
// @Summary Save the caller's profile
// @Description Upserts the user's display name and default dining preferences
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body SaveProfileInput true "Profile fields"
// @Success 200 {object} map[string]interface{} "Profile saved"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/profile [put]
func SaveProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input SaveProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.DietPreference == "" {
		input.DietPreference = models.DietAny
	}
	if input.BudgetPreference == "" {
		input.BudgetPreference = models.BudgetModerate
	}

	if !models.ValidDietType(input.DietPreference) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid diet preference"})
		return
	}
	if !models.ValidBudget(input.BudgetPreference) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget preference"})
		return
	}

	profile := models.Profile{
		UserID:           userID,
		DietPreference:   input.DietPreference,
		BudgetPreference: input.BudgetPreference,
	}
	if input.FullName != "" {
		profile.FullName = &input.FullName
	}

	// Upsert keyed by user ID, idempotent for well-formed input
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "diet_preference", "budget_preference", "updated_at"}),
	}).Create(&profile).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrSavingProfile, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated!",
		"profile": profile,
	})
}
