package dto

import (
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
)

// PetDTO represents a pet in API responses
type PetDTO struct {
	ID      uint64    `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Age     float64   `json:"age"`
	Hunger  int       `json:"hunger"`
	LastFed time.Time `json:"last_fed"`
	IsAlive bool      `json:"is_alive"`
	UserID  uint64    `json:"user_id"`
}

// ToPetDTO converts a Pet model to PetDTO
func ToPetDTO(pet models.Pet) PetDTO {
	return PetDTO{
		ID:      pet.ID,
		Name:    pet.Name,
		Type:    pet.Species,
		Age:     pet.Age,
		Hunger:  pet.Hunger,
		LastFed: pet.LastFed,
		IsAlive: pet.Alive,
		UserID:  pet.UserID,
	}
}

// ToPetListDTO converts a slice of pets
func ToPetListDTO(pets []models.Pet) []PetDTO {
	items := make([]PetDTO, len(pets))
	for i, pet := range pets {
		items[i] = ToPetDTO(pet)
	}
	return items
}
