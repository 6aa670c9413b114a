package handler

import (
	"net/http"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/middleware"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler covers the participant-facing engine operations: event
// registration, the invitation lifecycle and feedback.
type UserHandler struct {
	registrations *service.RegistrationService
	invitations   *service.InvitationService
	feedback      *service.FeedbackService
}

func NewUserHandler(registrations *service.RegistrationService, invitations *service.InvitationService, feedback *service.FeedbackService) *UserHandler {
	return &UserHandler{
		registrations: registrations,
		invitations:   invitations,
		feedback:      feedback,
	}
}

// RegisterForEvent
// POST /user/register
func (h *UserHandler) RegisterForEvent(c *gin.Context) {
	var req dto.RegisterForEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	resp, err := h.registrations.RegisterForEvent(c.Request.Context(), identity.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// SendInvitation
// POST /user/sendTeamInvitaion
func (h *UserHandler) SendInvitation(c *gin.Context) {
	var req dto.SendInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	resp, err := h.invitations.Send(c.Request.Context(), identity.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// AcceptInvitation
// POST /user/acceptTeamInvite
func (h *UserHandler) AcceptInvitation(c *gin.Context) {
	var req dto.AcceptInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.invitations.Accept(c.Request.Context(), identity.UserID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invitation accepted"})
}

// RejectInvitation
// POST /user/rejectTeamInvite
func (h *UserHandler) RejectInvitation(c *gin.Context) {
	var req dto.RejectInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.invitations.Reject(c.Request.Context(), identity.UserID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invitation rejected"})
}

// SubmitFeedback
// POST /user/feedback
func (h *UserHandler) SubmitFeedback(c *gin.Context) {
	var req dto.SubmitFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.feedback.Submit(c.Request.Context(), identity.UserID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "feedback recorded"})
}
