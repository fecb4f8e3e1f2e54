package controllers

import (
	"log/slog"
	"net/http"

	"github.com/DineTogether/dining_backend/cache"
	"github.com/DineTogether/dining_backend/database"
	"github.com/DineTogether/dining_backend/models"
	"github.com/DineTogether/dining_backend/utils"
	"github.com/DineTogether/dining_backend/views"
	"github.com/DineTogether/dining_backend/websocket"
	"github.com/gin-gonic/gin"
)

// loadRequestSnapshot fetches one request with its participant rows and the
// creator's profile, derived into a single-request snapshot for the caller
func loadRequestSnapshot(requestID string, userID uint) (views.Snapshot, models.DiningRequest, error) {
	var request models.DiningRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return views.Snapshot{}, request, err
	}

	var participants []models.Participant
	if err := database.DB.Where("request_id = ?", requestID).Find(&participants).Error; err != nil {
		return views.Snapshot{}, request, err
	}

	var profiles []models.Profile
	if err := database.DB.Where("user_id = ?", request.CreatorID).Find(&profiles).Error; err != nil {
		return views.Snapshot{}, request, err
	}

	return views.Build([]models.DiningRequest{request}, participants, profiles, userID), request, nil
}

// JoinRequest godoc
// @Summary Join a dining request
// @Description Adds the authenticated user as a participant. Fails when offline, when the request is full or closed, when the caller created it, or when already joined
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{} "Joined successfully"
// @Failure 400 {object} map[string]string "Cannot join own request or request closed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Already joined or request full"
// @Failure 503 {object} map[string]string "Store unreachable"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests/{id}/join [post]
func JoinRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID := c.Param("id")

	if !database.Available() {
		utils.Error(c, http.StatusServiceUnavailable, utils.OfflineJoin, "")
		return
	}

	snapshot, request, err := loadRequestSnapshot(requestID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if request.Status != models.StatusOpen {
		utils.Error(c, http.StatusBadRequest, utils.ErrJoiningRequest, "This request is no longer open.")
		return
	}

	// The reducer enforces the join preconditions; on refusal the view tells
	// us which one failed
	next, ok := snapshot.ApplyJoin(requestID, userID)
	if !ok {
		view, _ := snapshot.View(requestID)
		switch {
		case view.CreatorID == userID:
			utils.Error(c, http.StatusBadRequest, utils.ErrJoiningRequest, "You can't join your own request.")
		case view.Joined:
			utils.Error(c, http.StatusConflict, utils.ErrJoiningRequest, "You've already joined this request.")
		default:
			utils.Error(c, http.StatusConflict, utils.ErrJoiningRequest, "This request is already full.")
		}
		return
	}

	participant := models.Participant{
		RequestID: requestID,
		UserID:    userID,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		// Concurrent duplicate joins land here via the composite key
		slog.Error("failed to insert participant", "request_id", requestID, "user_id", userID, "error", err)
		utils.Error(c, http.StatusConflict, utils.ErrJoiningRequest, "")
		return
	}

	view, _ := next.View(requestID)

	cache.Invalidate(c.Request.Context(), cache.FeedKey)
	websocket.BroadcastFeed("participant_update", gin.H{
		"request_id":        requestID,
		"participant_count": view.ParticipantCount,
		"spots_left":        view.SpotsLeft,
	})
	websocket.BroadcastToWatchers(requestID, "participant_joined", gin.H{
		"request_id": requestID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": utils.JoinedRequest.Title,
		"request": view,
	})
}

// LeaveRequest godoc
// @Summary Leave a dining request
// @Description Removes the authenticated user's participant row. Leaving a request that was never joined is a safe no-op failure
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{} "Left successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Request not found or not joined"
// @Failure 503 {object} map[string]string "Store unreachable"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests/{id}/leave [post]
func LeaveRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID := c.Param("id")

	if !database.Available() {
		utils.Error(c, http.StatusServiceUnavailable, utils.OfflineLeave, "")
		return
	}

	snapshot, _, err := loadRequestSnapshot(requestID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	next, ok := snapshot.ApplyLeave(requestID, userID)
	if !ok {
		utils.Error(c, http.StatusNotFound, utils.ErrLeavingRequest, "You haven't joined this request.")
		return
	}

	result := database.DB.
		Where("request_id = ? AND user_id = ?", requestID, userID).
		Delete(&models.Participant{})
	if result.Error != nil {
		slog.Error("failed to delete participant", "request_id", requestID, "user_id", userID, "error", result.Error)
		utils.Error(c, http.StatusInternalServerError, utils.ErrLeavingRequest, "")
		return
	}
	if result.RowsAffected == 0 {
		// Row vanished between the read and the delete; nothing to undo
		utils.Error(c, http.StatusNotFound, utils.ErrLeavingRequest, "You haven't joined this request.")
		return
	}

	view, _ := next.View(requestID)

	cache.Invalidate(c.Request.Context(), cache.FeedKey)
	websocket.BroadcastFeed("participant_update", gin.H{
		"request_id":        requestID,
		"participant_count": view.ParticipantCount,
		"spots_left":        view.SpotsLeft,
	})
	websocket.BroadcastToWatchers(requestID, "participant_left", gin.H{
		"request_id": requestID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": utils.LeftRequest.Title,
		"request": view,
	})
}
