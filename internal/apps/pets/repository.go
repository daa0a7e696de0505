package pets

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindActivePet loads a pet the owner can act on. Missing, foreign and
// soft-deleted pets are all reported as ErrPetNotFound.
func FindActivePet(db *gorm.DB, ownerID, petID uint) (*models.Pet, error) {
	var pet models.Pet
	err := db.Scopes(identity.OwnedBy(ownerID), identity.Active).First(&pet, petID).Error
	return petOrNotFound(&pet, err)
}

// FindOwnedPet loads a pet of the owner regardless of its active flag.
func FindOwnedPet(db *gorm.DB, ownerID, petID uint) (*models.Pet, error) {
	var pet models.Pet
	err := db.Scopes(identity.OwnedBy(ownerID)).First(&pet, petID).Error
	return petOrNotFound(&pet, err)
}

// lockActivePet is FindActivePet under SELECT ... FOR UPDATE; tx must be a transaction.
func lockActivePet(tx *gorm.DB, ownerID, petID uint) (*models.Pet, error) {
	var pet models.Pet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(identity.OwnedBy(ownerID), identity.Active).
		First(&pet, petID).Error
	return petOrNotFound(&pet, err)
}

func petOrNotFound(pet *models.Pet, err error) (*models.Pet, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

// listPhotos returns a pet's photos with the avatar first, then newest first.
func listPhotos(db *gorm.DB, petID uint) ([]models.PetPhoto, error) {
	photos := []models.PetPhoto{}
	err := db.Where("pet_id = ?", petID).
		Order("is_avatar DESC, created_at DESC, id DESC").
		Find(&photos).Error
	return photos, err
}

// findOwnedPhoto loads a photo whose pet is active and owned by ownerID.
func findOwnedPhoto(db *gorm.DB, ownerID, photoID uint) (*models.PetPhoto, error) {
	owned := db.Model(&models.Pet{}).Select("id").
		Scopes(identity.OwnedBy(ownerID), identity.Active)

	var photo models.PetPhoto
	err := db.Where("id = ? AND pet_id IN (?)", photoID, owned).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// insertPhoto stores photo for pet and, when it is the avatar, demotes the
// previous avatar and points pet.avatar_url at it. The pet row must be locked.
func insertPhoto(tx *gorm.DB, pet *models.Pet, photo *models.PetPhoto) error {
	photo.PetID = pet.ID
	if photo.IsAvatar {
		if err := tx.Model(&models.PetPhoto{}).
			Where("pet_id = ? AND is_avatar = ?", pet.ID, true).
			Update("is_avatar", false).Error; err != nil {
			return err
		}
	}
	if err := tx.Create(photo).Error; err != nil {
		return err
	}
	if photo.IsAvatar {
		url := photo.URL
		if err := tx.Model(&models.Pet{}).Where("id = ?", pet.ID).Update("avatar_url", url).Error; err != nil {
			return err
		}
		pet.AvatarURL = &url
	}
	return nil
}
