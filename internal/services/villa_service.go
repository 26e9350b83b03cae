package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/connect"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"github.com/joshua-takyi/villabay/internal/models"
)

type VillaService struct {
	villasRepo models.VillasRepo
}

func NewVillaService(villasRepo models.VillasRepo) *VillaService {
	return &VillaService{
		villasRepo: villasRepo,
	}
}

// ValidateVillaStayBounds normalizes and checks the stay-length and
// pricing configuration before a villa is stored.
func ValidateVillaStayBounds(v *models.Villa) error {
	if v == nil {
		return fmt.Errorf("villa is nil")
	}

	if v.MinNights <= 0 {
		return fmt.Errorf("min_nights must be > 0")
	}
	if v.MaxNights < v.MinNights {
		return fmt.Errorf("max_nights must be >= min_nights")
	}
	if v.MaxGuests <= 0 {
		return fmt.Errorf("max_guests must be > 0")
	}
	if v.PricePerNight <= 0 {
		return fmt.Errorf("price_per_night must be > 0")
	}
	if v.CleaningFee < 0 || v.ServiceFee < 0 || v.Taxes < 0 {
		return fmt.Errorf("fees and taxes must be >= 0")
	}

	return nil
}

func (vs *VillaService) CreateVilla(ctx context.Context, villa *models.Villa, hostId uuid.UUID, accessToken string) (*models.Villa, error) {
	if err := models.Validate.Struct(villa); err != nil {
		return nil, fmt.Errorf("invalid villa data provided: %v", err)
	}

	if err := ValidateVillaStayBounds(villa); err != nil {
		return nil, err
	}

	villa.Slug = helpers.GenerateSlug(villa.Name, villa.Region)
	now := time.Now()
	if villa.Id == uuid.Nil {
		villa.Id = uuid.New()
	}
	villa.CreatedAt = now
	villa.UpdatedAt = now
	if villa.Status == "" {
		villa.Status = models.StatusPending
	}

	// Upload images first if any
	var uploadedPublicIDs []string
	if len(villa.Images) > 0 {
		uploadChan := make(chan struct {
			urls      []string
			publicIDs []string
		}, 1)
		errorChan := make(chan error, 1)

		go func() {
			urls, publicIDs, uploadErr := helpers.UploadImages(ctx, connect.Cld, villa.Images, helpers.VillaFolder)
			if uploadErr != nil {
				errorChan <- uploadErr
				return
			}
			uploadChan <- struct {
				urls      []string
				publicIDs []string
			}{urls, publicIDs}
		}()

		select {
		case result := <-uploadChan:
			villa.Images = result.urls
			uploadedPublicIDs = result.publicIDs
		case uploadErr := <-errorChan:
			return nil, fmt.Errorf("failed to upload images: %v", uploadErr)
		case <-time.After(30 * time.Second):
			return nil, fmt.Errorf("image upload timeout")
		}
	}

	created, err := vs.villasRepo.CreateVilla(ctx, villa, hostId)
	if err != nil {
		// Roll back uploaded assets so they don't leak
		if len(uploadedPublicIDs) > 0 {
			helpers.DeleteImages(ctx, connect.Cld, uploadedPublicIDs)
		}
		return nil, fmt.Errorf("failed to create villa: %v", err)
	}

	return created, nil
}

func (vs *VillaService) GetVillaByID(ctx context.Context, id uuid.UUID) (*models.Villa, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid villa ID")
	}
	return vs.villasRepo.GetVillaByID(ctx, id)
}

func (vs *VillaService) ListVillas(ctx context.Context, offset, limit int) ([]*models.Villa, int, error) {
	return vs.villasRepo.ListVillas(ctx, offset, limit)
}

func (vs *VillaService) SearchVillas(ctx context.Context, filters models.VillaFilters, offset, limit int) ([]*models.Villa, int, error) {
	filters.OnlyActive = true
	return vs.villasRepo.SearchVillas(ctx, filters, offset, limit)
}

func (vs *VillaService) ListVillasByHost(ctx context.Context, hostId uuid.UUID) ([]*models.Villa, error) {
	if hostId == uuid.Nil {
		return nil, fmt.Errorf("invalid host ID")
	}
	return vs.villasRepo.ListVillasByHost(ctx, hostId)
}

func (vs *VillaService) UpdateVilla(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*models.Villa, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid villa ID")
	}

	fields["updated_at"] = time.Now()
	return vs.villasRepo.UpdateVilla(ctx, id, fields, accessToken)
}

func (vs *VillaService) DeleteVilla(ctx context.Context, id uuid.UUID, hostId uuid.UUID, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid villa ID")
	}
	return vs.villasRepo.DeleteVilla(ctx, id, hostId, accessToken)
}
