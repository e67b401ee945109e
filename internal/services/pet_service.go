package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/blossom-focus/blossom-api/internal/constants"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPetNotFound     = errors.New("pet not found")
	ErrPetNotAlive     = errors.New("pet is no longer alive")
	ErrInsufficientXP  = errors.New("not enough XP to feed the pet")
	ErrPetNameRequired = errors.New("pet name is required")
)

// PetService handles pet business logic: creation, feeding, and the lazy
// liveness rule.
type PetService struct {
	petRepo  repository.PetRepository
	userRepo repository.UserRepository
}

// NewPetService creates a new PetService
func NewPetService(petRepo repository.PetRepository, userRepo repository.UserRepository) *PetService {
	return &PetService{
		petRepo:  petRepo,
		userRepo: userRepo,
	}
}

// CreatePetInput represents input for creating a pet
type CreatePetInput struct {
	Name    string
	Species string
	UserID  uint64
}

// UpdatePetInput represents input for updating a pet
type UpdatePetInput struct {
	Name   *string
	Hunger *int
}

// RecomputeLiveness applies the starvation rule: a pet unfed for seven or
// more days is dead. Pure with respect to the store; returns whether the
// flag changed. There is no background sweep — this runs at the top of every
// pet read/write path.
func RecomputeLiveness(pet *models.Pet, now time.Time) bool {
	days := int(now.Sub(pet.LastFed).Hours() / 24)
	if pet.Alive && days >= constants.PetStarvationDays {
		pet.Alive = false
		return true
	}
	return false
}

// CreatePet creates a pet with full hunger, age zero, and a fresh feed clock.
func (s *PetService) CreatePet(input CreatePetInput) (*models.Pet, error) {
	if input.Name == "" {
		return nil, ErrPetNameRequired
	}

	pet := &models.Pet{
		Name:    input.Name,
		Species: input.Species,
		Age:     0,
		Hunger:  constants.PetMaxHunger,
		LastFed: time.Now(),
		Alive:   true,
		UserID:  input.UserID,
	}

	if err := s.petRepo.Create(pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	return pet, nil
}

// ListPets returns the user's pets with liveness recomputed.
func (s *PetService) ListPets(userID uint64) ([]models.Pet, error) {
	pets, err := s.petRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	now := time.Now()
	for i := range pets {
		if RecomputeLiveness(&pets[i], now) {
			if err := s.petRepo.Update(&pets[i]); err != nil {
				return nil, fmt.Errorf("failed to update pet liveness: %w", err)
			}
		}
	}

	return pets, nil
}

// FeedPet deducts the feed cost from the owner's XP and resets the pet's feed
// clock. Dead pets and owners below the feed cost are rejected with the pet
// left unmodified.
func (s *PetService) FeedPet(userID, petID uint64) (*models.Pet, error) {
	pet, err := s.findOwnedPet(userID, petID)
	if err != nil {
		return nil, err
	}

	if !pet.Alive {
		return nil, ErrPetNotAlive
	}

	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pet owner: %w", err)
	}

	xp := currentXP(owner)
	if xp < constants.PetFeedCost {
		return nil, ErrInsufficientXP
	}
	xp -= constants.PetFeedCost
	owner.XP = &xp

	pet.Hunger = pet.Hunger - constants.PetFeedHungerCut
	if pet.Hunger < 0 {
		pet.Hunger = 0
	}
	pet.LastFed = time.Now()
	pet.Age += constants.PetAgeStep
	pet.Alive = true

	if err := s.petRepo.UpdateWithOwner(pet, owner); err != nil {
		return nil, fmt.Errorf("failed to feed pet: %w", err)
	}

	return pet, nil
}

// UpdatePet renames a pet or adjusts its hunger. Dead pets reject every
// mutation, renames included.
func (s *PetService) UpdatePet(userID, petID uint64, input UpdatePetInput) (*models.Pet, error) {
	pet, err := s.findOwnedPet(userID, petID)
	if err != nil {
		return nil, err
	}

	if !pet.Alive {
		return nil, ErrPetNotAlive
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrPetNameRequired
		}
		pet.Name = *input.Name
	}
	if input.Hunger != nil {
		hunger := *input.Hunger
		if hunger < 0 {
			hunger = 0
		}
		if hunger > constants.PetMaxHunger {
			hunger = constants.PetMaxHunger
		}
		pet.Hunger = hunger
	}

	if err := s.petRepo.Update(pet); err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	return pet, nil
}

// DeletePet removes a pet owned by the user.
func (s *PetService) DeletePet(userID, petID uint64) error {
	pet, err := s.petRepo.FindByIDForUser(petID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return fmt.Errorf("failed to find pet: %w", err)
	}

	if err := s.petRepo.Delete(pet.ID); err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	return nil
}

// findOwnedPet loads an owner-scoped pet and settles its liveness flag before
// the caller acts on it.
func (s *PetService) findOwnedPet(userID, petID uint64) (*models.Pet, error) {
	pet, err := s.petRepo.FindByIDForUser(petID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}

	if RecomputeLiveness(pet, time.Now()) {
		if err := s.petRepo.Update(pet); err != nil {
			return nil, fmt.Errorf("failed to update pet liveness: %w", err)
		}
	}

	return pet, nil
}
