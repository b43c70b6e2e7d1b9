// internal/services/advertisement_service.go
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
)

type AdvertisementService struct {
	advertisements repository.AdvertisementRepository
}

type CreateAdvertisementRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
}

type UpdateAdvertisementRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type UpdateAdvertisementStatusRequest struct {
	Status string `json:"status" validate:"required,ad_status"`
}

func NewAdvertisementService(advertisements repository.AdvertisementRepository) *AdvertisementService {
	return &AdvertisementService{advertisements: advertisements}
}

func (s *AdvertisementService) CreateAdvertisement(ctx context.Context, vendorEmail string, req *CreateAdvertisementRequest) (*models.WriteResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.advertisements.Create(ctx, &models.Advertisement{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Status:      models.AdvertisementStatusPending,
		VendorEmail: vendorEmail,
		CreatedAt:   models.NowISO(),
	})
	if err != nil {
		return nil, storeError("create advertisement", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	return result, nil
}

func (s *AdvertisementService) GetVendorAdvertisements(ctx context.Context, callerEmail, vendorEmail string) ([]models.Advertisement, error) {
	if vendorEmail != callerEmail {
		return nil, forbidden()
	}

	ads, err := s.advertisements.FindByVendor(ctx, callerEmail)
	if err != nil {
		return nil, storeError("list vendor advertisements", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	return ads, nil
}

func (s *AdvertisementService) GetAllAdvertisements(ctx context.Context) ([]models.Advertisement, error) {
	ads, err := s.advertisements.FindAll(ctx)
	if err != nil {
		return nil, storeError("list advertisements", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	return ads, nil
}

// GetApprovedAdvertisements feeds the public home page banner.
func (s *AdvertisementService) GetApprovedAdvertisements(ctx context.Context) ([]models.Advertisement, error) {
	ads, err := s.advertisements.FindByStatus(ctx, models.AdvertisementStatusApproved)
	if err != nil {
		return nil, storeError("list approved advertisements", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	return ads, nil
}

// UpdateAdvertisement edits content and sends the advertisement back to review.
func (s *AdvertisementService) UpdateAdvertisement(ctx context.Context, callerEmail, id string, req *UpdateAdvertisementRequest) (*models.WriteResult, error) {
	ad, err := s.ownedAdvertisement(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	if req.Title != "" {
		update["title"] = req.Title
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Image != "" {
		update["image"] = req.Image
	}
	if len(update) == 0 {
		return nil, invalid(i18n.KeyValidationInvalid)
	}
	update["status"] = string(models.AdvertisementStatusPending)

	result, err := s.advertisements.Update(ctx, ad.ID, update)
	if err != nil {
		return nil, storeError("update advertisement", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	return result, nil
}

func (s *AdvertisementService) DeleteAdvertisement(ctx context.Context, callerEmail, id string) (*models.WriteResult, error) {
	ad, err := s.ownedAdvertisement(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}

	result, err := s.advertisements.Delete(ctx, ad.ID)
	if err != nil {
		return nil, storeError("delete advertisement", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	return result, nil
}

func (s *AdvertisementService) UpdateStatus(ctx context.Context, id string, req *UpdateAdvertisementStatusRequest) (*models.WriteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.advertisements.UpdateStatus(ctx, oid, models.AdvertisementStatus(req.Status))
	if err != nil {
		return nil, storeError("update advertisement status", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	if result.MatchedCount == 0 {
		return nil, notFound(i18n.KeyAdvertisementNotFound)
	}
	return result, nil
}

func (s *AdvertisementService) ownedAdvertisement(ctx context.Context, callerEmail, id string) (*models.Advertisement, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ad, err := s.advertisements.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError("find advertisement", err, i18n.KeyAdvertisementNotFound, i18n.KeyResourceConflict)
	}
	if ad.VendorEmail != callerEmail {
		return nil, forbidden()
	}
	return ad, nil
}
