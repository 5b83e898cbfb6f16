package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/service"
)

type RegisterHandler struct{ svc service.RegisterService }

func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

func (h *RegisterHandler) Open(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	session, err := h.svc.Open(c.Request.Context(), req, cashierName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Close returns the final snapshot of the closed session, including the
// counted difference, for the closing receipt.
func (h *RegisterHandler) Close(c *gin.Context) {
	var req dto.CloseRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	session, err := h.svc.Close(c.Request.Context(), req, cashierName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *RegisterHandler) RecordMovement(c *gin.Context) {
	var req dto.MovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	movement, err := h.svc.RecordMovement(c.Request.Context(), req, cashierName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// Current returns the open session, or 404 when the drawer is closed.
func (h *RegisterHandler) Current(c *gin.Context) {
	session, err := h.svc.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no open register session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *RegisterHandler) Movements(c *gin.Context) {
	movements, err := h.svc.Movements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements, "total": len(movements)})
}
