package handler

import (
	"net/http"
	"strconv"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/middleware"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers the club-admin and global-admin surfaces: club
// management, attendance, winners, and the events-history aggregation.
type AdminHandler struct {
	clubs      *service.ClubService
	events     *service.EventService
	attendance *service.AttendanceService
	history    *service.HistoryService
}

func NewAdminHandler(clubs *service.ClubService, events *service.EventService, attendance *service.AttendanceService, history *service.HistoryService) *AdminHandler {
	return &AdminHandler{
		clubs:      clubs,
		events:     events,
		attendance: attendance,
		history:    history,
	}
}

// CreateClub
// POST /admin/club  (global admin)
func (h *AdminHandler) CreateClub(c *gin.Context) {
	var req dto.CreateClubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.clubs.CreateClub(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// AddClubAdmin
// POST /admin/clubAdmin  (global admin)
func (h *AdminHandler) AddClubAdmin(c *gin.Context) {
	var req dto.AddClubAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.clubs.AddClubAdmin(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "club admin added"})
}

// GetClub
// GET /club/:id
func (h *AdminHandler) GetClub(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}

	club, err := h.clubs.GetClub(c.Request.Context(), clubID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": club})
}

// MarkAttendance
// POST /admin/attendance  (club admin)
func (h *AdminHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.attendance.MarkAttendance(c.Request.Context(), req.EventID, req.UserID, *req.IsPresent); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance recorded"})
}

// AddWinners
// POST /admin/winners?club_id=  (club admin)
func (h *AdminHandler) AddWinners(c *gin.Context) {
	clubID, ok := queryClubID(c)
	if !ok {
		return
	}
	identity := middleware.GetIdentity(c)
	if !identity.AdminOfClub(clubID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not an admin of this club"})
		return
	}

	var req dto.AddWinnersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.events.AddWinners(c.Request.Context(), clubID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "winners recorded"})
}

// EventsHistory
// GET /admin/events-history?club_id=  (club admin)
func (h *AdminHandler) EventsHistory(c *gin.Context) {
	clubIDStr := c.Query("club_id")
	clubID, err := strconv.Atoi(clubIDStr)
	if err != nil || clubID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "club_id is required"})
		return
	}

	result, err := h.history.ListPastEvents(c.Request.Context(), uint(clubID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
