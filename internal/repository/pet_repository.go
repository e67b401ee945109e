package repository

import (
	"github.com/blossom-focus/blossom-api/internal/models"
	"gorm.io/gorm"
)

// GormPetRepository is a GORM implementation of PetRepository
type GormPetRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a new PetRepository
func NewPetRepository(db *gorm.DB) PetRepository {
	return &GormPetRepository{db: db}
}

// Create creates a new pet
func (r *GormPetRepository) Create(pet *models.Pet) error {
	return r.db.Create(pet).Error
}

// FindByIDForUser finds a pet scoped to its owner
func (r *GormPetRepository) FindByIDForUser(id, userID uint64) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// ListByUser retrieves all pets owned by a user
func (r *GormPetRepository) ListByUser(userID uint64) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// Update updates a pet
func (r *GormPetRepository) Update(pet *models.Pet) error {
	return r.db.Save(pet).Error
}

// UpdateWithOwner saves the pet and its owner atomically so the feed cost and
// the hunger change commit together.
func (r *GormPetRepository) UpdateWithOwner(pet *models.Pet, owner *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(pet).Error; err != nil {
			return err
		}
		return tx.Save(owner).Error
	})
}

// Delete removes a pet
func (r *GormPetRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Pet{}, id).Error
}
