package controllers

import (
	"net/http"
	"time"

	"github.com/DineTogether/dining_backend/cache"
	"github.com/DineTogether/dining_backend/database"
	"github.com/DineTogether/dining_backend/models"
	"github.com/DineTogether/dining_backend/utils"
	"github.com/DineTogether/dining_backend/views"
	"github.com/DineTogether/dining_backend/websocket"
	"github.com/gin-gonic/gin"
)

type CreateRequestInput struct {
	RestaurantName  string    `json:"restaurant_name" binding:"required" example:"The Italian Kitchen"`
	Location        string    `json:"location" binding:"required" example:"Downtown, Main Street"`
	DateTime        time.Time `json:"date_time" binding:"required" example:"2026-09-15T19:00:00Z"`
	CuisineType     string    `json:"cuisine_type" example:"Italian"`
	DietType        string    `json:"diet_type" example:"any"`
	Budget          string    `json:"budget" example:"moderate"`
	MaxParticipants int       `json:"max_participants" example:"4"`
	Description     string    `json:"description" example:"Casual dinner, everyone welcome"`
}

// feedRows are the raw store rows backing the browse view. They are shared
// by all users (the per-user joined set is derived afterwards), which is what
// makes them cacheable under a single key.
type feedRows struct {
	Requests     []models.DiningRequest `json:"requests"`
	Participants []models.Participant   `json:"participants"`
	Profiles     []models.Profile       `json:"profiles"`
}

// fetchFeed reads open future-dated requests ordered by date_time, all
// participant rows and the profiles of the creators appearing in the fetched
// requests. Any read failing fails the whole fetch.
func fetchFeed() (feedRows, error) {
	var rows feedRows

	if err := database.DB.
		Where("status = ? AND date_time >= ?", models.StatusOpen, time.Now()).
		Order("date_time asc").
		Find(&rows.Requests).Error; err != nil {
		return rows, err
	}

	if err := database.DB.Find(&rows.Participants).Error; err != nil {
		return rows, err
	}

	// Creator IDs come from the requests already fetched
	creatorIDs := make([]uint, 0, len(rows.Requests))
	seen := make(map[uint]bool)
	for _, r := range rows.Requests {
		if !seen[r.CreatorID] {
			seen[r.CreatorID] = true
			creatorIDs = append(creatorIDs, r.CreatorID)
		}
	}

	if len(creatorIDs) > 0 {
		if err := database.DB.Where("user_id IN ?", creatorIDs).Find(&rows.Profiles).Error; err != nil {
			return rows, err
		}
	}

	return rows, nil
}

// GetRequests godoc
// @Summary Browse open dining requests
// @Description Returns open future-dated requests decorated with creator names and participant counts, filtered by search/diet/budget and split into the caller's own requests and everyone else's
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match against restaurant, location and cuisine"
// @Param diet query string false "Diet filter (any, veg, non-veg or all)"
// @Param budget query string false "Budget filter (budget, moderate, premium or all)"
// @Success 200 {object} map[string]interface{} "Browse feed"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Store unreachable"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests [get]
func GetRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	filters := views.Filters{
		Search: c.Query("search"),
		Diet:   c.Query("diet"),
		Budget: c.Query("budget"),
	}
	if !filters.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid diet or budget filter"})
		return
	}

	if !database.Available() {
		utils.Error(c, http.StatusServiceUnavailable, utils.OfflineFetch, "")
		return
	}

	rows, err := cache.GetOrSet(c.Request.Context(), cache.FeedKey, cache.FeedTTL, fetchFeed)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingRequests, "")
		return
	}

	snapshot := views.Build(rows.Requests, rows.Participants, rows.Profiles, userID)
	filtered := filters.Apply(snapshot.Requests)

	mine, others := views.Snapshot{Requests: filtered, Joined: snapshot.Joined}.Split(userID)

	joined := make([]string, 0, len(snapshot.Joined))
	for id := range snapshot.Joined {
		joined = append(joined, id)
	}

	c.JSON(http.StatusOK, gin.H{
		"my_requests":    mine,
		"other_requests": others,
		"joined":         joined,
	})
}

// CreateRequest godoc
// @Summary Create a dining request
// @Description Creates an open dining request with the authenticated user as the creator
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestInput true "Request Creation"
// @Success 201 {object} map[string]interface{} "Request created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Store unreachable"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests [post]
func CreateRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.DietType == "" {
		input.DietType = models.DietAny
	}
	if input.Budget == "" {
		input.Budget = models.BudgetModerate
	}
	if input.MaxParticipants == 0 {
		input.MaxParticipants = 4
	}

	if !models.ValidDietType(input.DietType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid diet type"})
		return
	}
	if !models.ValidBudget(input.Budget) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget"})
		return
	}
	if input.MaxParticipants < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_participants must be at least 1"})
		return
	}

	// Same minimum the creation form enforces
	if input.DateTime.Before(time.Now().Add(time.Hour)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_time must be at least an hour from now"})
		return
	}

	if !database.Available() {
		utils.Error(c, http.StatusServiceUnavailable, utils.OfflineFetch, "")
		return
	}

	request := models.DiningRequest{
		RestaurantName:  input.RestaurantName,
		Location:        input.Location,
		DateTime:        input.DateTime,
		DietType:        input.DietType,
		Budget:          input.Budget,
		MaxParticipants: input.MaxParticipants,
		CreatorID:       userID,
		Status:          models.StatusOpen,
	}
	if input.CuisineType != "" {
		request.CuisineType = &input.CuisineType
	}
	if input.Description != "" {
		request.Description = &input.Description
	}

	if err := database.DB.Create(&request).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrCreatingRequest, err.Error())
		return
	}

	cache.Invalidate(c.Request.Context(), cache.FeedKey)
	websocket.BroadcastFeed("request_created", request)

	c.JSON(http.StatusCreated, gin.H{
		"message": utils.RequestCreated.Title,
		"request": request,
	})
}

// GetRequest godoc
// @Summary Get a single dining request
// @Description Returns one request decorated with its creator name, participant count and the profiles of everyone who joined
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{} "Request details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests/{id} [get]
func GetRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID := c.Param("id")

	var request models.DiningRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	var participants []models.Participant
	if err := database.DB.Where("request_id = ?", requestID).Find(&participants).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingRequests, "")
		return
	}

	// Profiles of the creator and everyone who joined
	userIDs := []uint{request.CreatorID}
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}
	var profiles []models.Profile
	if err := database.DB.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingRequests, "")
		return
	}

	snapshot := views.Build([]models.DiningRequest{request}, participants, profiles, userID)
	view, _ := snapshot.View(requestID)

	participantProfiles := []models.Profile{}
	for _, p := range profiles {
		if p.UserID != request.CreatorID {
			participantProfiles = append(participantProfiles, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"request":      view,
		"participants": participantProfiles,
	})
}

// GetHistory godoc
// @Summary Get the caller's dining history
// @Description Returns the requests the user created and the requests they joined, newest first
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Created and joined requests"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/history [get]
func GetHistory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var created []models.DiningRequest
	if err := database.DB.
		Where("creator_id = ?", userID).
		Order("date_time desc").
		Find(&created).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingHistory, "")
		return
	}

	var memberships []models.Participant
	if err := database.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingHistory, "")
		return
	}

	joined := []models.DiningRequest{}
	if len(memberships) > 0 {
		joinedIDs := make([]string, 0, len(memberships))
		for _, m := range memberships {
			joinedIDs = append(joinedIDs, m.RequestID)
		}
		if err := database.DB.
			Where("id IN ? AND creator_id <> ?", joinedIDs, userID).
			Order("date_time desc").
			Find(&joined).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingHistory, "")
			return
		}
	}

	// One participant and profile fetch covers both tabs
	allIDs := make([]string, 0, len(created)+len(joined))
	creatorIDs := []uint{userID}
	for _, r := range created {
		allIDs = append(allIDs, r.ID)
	}
	for _, r := range joined {
		allIDs = append(allIDs, r.ID)
		creatorIDs = append(creatorIDs, r.CreatorID)
	}

	var participants []models.Participant
	if len(allIDs) > 0 {
		if err := database.DB.Where("request_id IN ?", allIDs).Find(&participants).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingHistory, "")
			return
		}
	}

	var profiles []models.Profile
	if err := database.DB.Where("user_id IN ?", creatorIDs).Find(&profiles).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrLoadingHistory, "")
		return
	}

	createdViews := views.Build(created, participants, profiles, userID)
	joinedViews := views.Build(joined, participants, profiles, userID)

	c.JSON(http.StatusOK, gin.H{
		"created": createdViews.Requests,
		"joined":  joinedViews.Requests,
	})
}

// CloseRequest godoc
// @Summary Close a dining request
// @Description Marks a request as closed so it no longer appears on the browse view. Only the creator can close a request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string "Request closed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests/{id}/close [put]
func CloseRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID := c.Param("id")

	var request models.DiningRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if request.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can close a request"})
		return
	}

	if err := database.DB.Model(&request).Update("status", models.StatusClosed).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrGeneric, "")
		return
	}

	cache.Invalidate(c.Request.Context(), cache.FeedKey)
	websocket.BroadcastFeed("request_closed", gin.H{"request_id": requestID})

	c.JSON(http.StatusOK, gin.H{"message": "Request closed successfully"})
}

// DeleteRequest godoc
// @Summary Delete a dining request
// @Description Deletes a request and its participant rows. Only the creator can delete a request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string "Request deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests/{id} [delete]
func DeleteRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID := c.Param("id")

	var request models.DiningRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if request.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can delete a request"})
		return
	}

	// Delete participant rows first
	if err := database.DB.Where("request_id = ?", requestID).Delete(&models.Participant{}).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrGeneric, "")
		return
	}

	if err := database.DB.Delete(&request).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, utils.ErrGeneric, "")
		return
	}

	cache.Invalidate(c.Request.Context(), cache.FeedKey)
	websocket.BroadcastFeed("request_removed", gin.H{"request_id": requestID})

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}
