package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blossom-focus/blossom-api/internal/dto"
	apierrors "github.com/blossom-focus/blossom-api/internal/errors"
	"github.com/blossom-focus/blossom-api/internal/middleware"
	"github.com/blossom-focus/blossom-api/internal/services"
)

// PetHandler coordinates pet HTTP handlers.
type PetHandler struct {
	petService *services.PetService
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petService *services.PetService) *PetHandler {
	return &PetHandler{
		petService: petService,
	}
}

// CreatePet creates a pet for the authenticated user.
func (h *PetHandler) CreatePet(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePetRequest struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required"`
	}

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pet, err := h.petService.CreatePet(services.CreatePetInput{
		Name:    req.Name,
		Species: req.Type,
		UserID:  userID,
	})
	if err != nil {
		respondPetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPetDTO(*pet))
}

// ListPets returns the user's pets with liveness settled.
func (h *PetHandler) ListPets(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	pets, err := h.petService.ListPets(userID)
	if err != nil {
		respondPetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPetListDTO(pets))
}

// UpdatePet renames a pet or adjusts its hunger.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	petID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdatePetRequest struct {
		Name   *string `json:"name"`
		Hunger *int    `json:"hunger"`
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pet, err := h.petService.UpdatePet(userID, petID, services.UpdatePetInput{
		Name:   req.Name,
		Hunger: req.Hunger,
	})
	if err != nil {
		respondPetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPetDTO(*pet))
}

// FeedPet feeds a pet, spending the owner's XP.
func (h *PetHandler) FeedPet(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	petID, ok := parseIDParam(c)
	if !ok {
		return
	}

	pet, err := h.petService.FeedPet(userID, petID)
	if err != nil {
		respondPetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPetDTO(*pet))
}

// DeletePet removes a pet.
func (h *PetHandler) DeletePet(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	petID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.petService.DeletePet(userID, petID); err != nil {
		respondPetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}

func respondPetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPetNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPetNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPetNotAlive),
		errors.Is(err, services.ErrInsufficientXP):
		apierrors.PreconditionFailed(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
