package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/middleware"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GetEvent
// GET /event/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := paramID(c, "id")
	if !ok {
		return
	}

	resp, err := h.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListUpcoming
// GET /events/upcoming
func (h *EventHandler) ListUpcoming(c *gin.Context) {
	events, err := h.events.ListUpcomingEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ListClubEvents
// GET /club/:id/events
func (h *EventHandler) ListClubEvents(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}

	events, err := h.events.ListClubEvents(c.Request.Context(), clubID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// CreateEvent
// POST /admin/event?club_id=
func (h *EventHandler) CreateEvent(c *gin.Context) {
	clubID, ok := queryClubID(c)
	if !ok {
		return
	}
	identity := middleware.GetIdentity(c)
	if !identity.AdminOfClub(clubID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not an admin of this club"})
		return
	}

	var req dto.CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.events.CreateEvent(c.Request.Context(), clubID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// UploadPoster
// POST /admin/event/:id/poster?club_id=  (multipart field "poster")
func (h *EventHandler) UploadPoster(c *gin.Context) {
	eventID, ok := paramID(c, "id")
	if !ok {
		return
	}
	clubID, ok := queryClubID(c)
	if !ok {
		return
	}
	identity := middleware.GetIdentity(c)
	if !identity.AdminOfClub(clubID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not an admin of this club"})
		return
	}

	fileHeader, err := c.FormFile("poster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read poster file"})
		return
	}
	defer file.Close()

	path, err := h.events.UploadPoster(
		c.Request.Context(),
		clubID,
		eventID,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		filepath.Ext(fileHeader.Filename),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"poster": path}})
}

func queryClubID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Query("club_id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "club_id is required"})
		return 0, false
	}
	return uint(id), true
}
