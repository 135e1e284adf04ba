package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/models"
)

const msgAnnouncementNotFound = "Announcement not found"

// ListActiveAnnouncements feeds the public banner: active entries only
func ListActiveAnnouncements(ctx *gin.Context) {
	var announcements []models.Announcement
	result := initializers.DB.Where("is_active = ?", true).Order("created_at desc").Find(&announcements)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch announcements")
		return
	}

	response := make([]models.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		response = append(response, a.ToResponse())
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// AdminListAnnouncements lists every announcement (admin only)
func AdminListAnnouncements(ctx *gin.Context) {
	var announcements []models.Announcement
	result := initializers.DB.Order("created_at desc").Find(&announcements)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch announcements")
		return
	}

	response := make([]models.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		response = append(response, a.ToResponse())
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// CreateAnnouncement publishes a new announcement (admin only)
func CreateAnnouncement(ctx *gin.Context) {
	var data models.AnnouncementCreateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	announcement := models.Announcement{
		Title:    data.Title,
		Content:  data.Content,
		IsActive: true,
	}
	if result := initializers.DB.Create(&announcement); result.Error != nil {
		log.Println("Announcement creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, announcement.ToResponse())
}

// UpdateAnnouncement edits or toggles an announcement (admin only)
func UpdateAnnouncement(ctx *gin.Context) {
	announcementID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	var data models.AnnouncementUpdateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var announcement models.Announcement
	if result := initializers.DB.First(&announcement, announcementID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgAnnouncementNotFound)
		return
	}

	updates := map[string]any{}
	if data.Title != nil {
		updates["title"] = *data.Title
	}
	if data.Content != nil {
		updates["content"] = *data.Content
	}
	if data.IsActive != nil {
		updates["is_active"] = *data.IsActive
	}

	if len(updates) > 0 {
		if result := initializers.DB.Model(&announcement).Updates(updates); result.Error != nil {
			log.Println("Announcement update error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, announcement.ToResponse())
}

// DeleteAnnouncement removes an announcement (admin only)
func DeleteAnnouncement(ctx *gin.Context) {
	announcementID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	result := initializers.DB.Delete(&models.Announcement{}, announcementID)
	if result.Error != nil {
		log.Println("Announcement delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgAnnouncementNotFound)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, "Announcement deleted successfully")
}
