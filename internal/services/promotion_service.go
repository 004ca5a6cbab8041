// internal/services/promotion_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

// PromotionService manages bundle offers and storefront promotions.
// Bundle offers feed the cart's bundle pricing; a cart line keeps its
// frozen discount even if the offer is later deactivated.
type PromotionService struct {
	db          *gorm.DB
	broadcaster Broadcaster
}

func NewPromotionService(db *gorm.DB, broadcaster Broadcaster) *PromotionService {
	return &PromotionService{db: db, broadcaster: broadcaster}
}

type BundleOfferInput struct {
	Name               string   `json:"name" validate:"required"`
	NameAr             string   `json:"name_ar"`
	ProductIDs         []string `json:"product_ids" validate:"required,min=2"`
	DiscountPercentage float64  `json:"discount_percentage" validate:"required,gt=0,lte=100"`
	Active             *bool    `json:"active"`
}

type PromotionInput struct {
	Title         string  `json:"title" validate:"required"`
	TitleAr       string  `json:"title_ar"`
	PromotionType string  `json:"promotion_type" validate:"required"`
	ImageURL      string  `json:"image_url"`
	TargetID      string  `json:"target_id"`
	SortOrder     float64 `json:"sort_order"`
	Active        *bool   `json:"active"`
}

// ListBundleOffers returns offers, only active ones unless asked
// otherwise.
func (s *PromotionService) ListBundleOffers(includeInactive bool) ([]models.BundleOffer, error) {
	query := s.db.Order("created_at DESC")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var offers []models.BundleOffer
	err := query.Find(&offers).Error
	return offers, err
}

func (s *PromotionService) GetBundleOffer(id string) (*models.BundleOffer, error) {
	var offer models.BundleOffer
	if err := s.db.First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up bundle offer: %w", err)
	}
	return &offer, nil
}

func (s *PromotionService) CreateBundleOffer(input BundleOfferInput) (*models.BundleOffer, error) {
	offer := &models.BundleOffer{
		Name:               input.Name,
		NameAr:             input.NameAr,
		ProductIDs:         pq.StringArray(input.ProductIDs),
		DiscountPercentage: input.DiscountPercentage,
		Active:             true,
	}
	if input.Active != nil {
		offer.Active = *input.Active
	}
	if err := s.db.Create(offer).Error; err != nil {
		return nil, fmt.Errorf("creating bundle offer: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("bundle_offers"))
	return offer, nil
}

func (s *PromotionService) UpdateBundleOffer(id string, input BundleOfferInput) (*models.BundleOffer, error) {
	offer, err := s.GetBundleOffer(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":                input.Name,
		"name_ar":             input.NameAr,
		"product_ids":         pq.StringArray(input.ProductIDs),
		"discount_percentage": input.DiscountPercentage,
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if err := s.db.Model(offer).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating bundle offer: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("bundle_offers"))
	return offer, nil
}

func (s *PromotionService) DeleteBundleOffer(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.BundleOffer{})
	if result.Error != nil {
		return fmt.Errorf("deleting bundle offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcaster.Broadcast(SyncEvent("bundle_offers"))
	return nil
}

// ListPromotions returns storefront promotions in display order.
func (s *PromotionService) ListPromotions(includeInactive bool) ([]models.Promotion, error) {
	query := s.db.Order("sort_order ASC, created_at DESC")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var promotions []models.Promotion
	err := query.Find(&promotions).Error
	return promotions, err
}

func (s *PromotionService) CreatePromotion(input PromotionInput) (*models.Promotion, error) {
	promotion := &models.Promotion{
		Title:         input.Title,
		TitleAr:       input.TitleAr,
		PromotionType: input.PromotionType,
		ImageURL:      input.ImageURL,
		TargetID:      input.TargetID,
		SortOrder:     input.SortOrder,
		Active:        true,
	}
	if input.Active != nil {
		promotion.Active = *input.Active
	}
	if err := s.db.Create(promotion).Error; err != nil {
		return nil, fmt.Errorf("creating promotion: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("promotions"))
	return promotion, nil
}

func (s *PromotionService) UpdatePromotion(id string, input PromotionInput) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := s.db.First(&promotion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up promotion: %w", err)
	}

	updates := map[string]interface{}{
		"title":          input.Title,
		"title_ar":       input.TitleAr,
		"promotion_type": input.PromotionType,
		"image_url":      input.ImageURL,
		"target_id":      input.TargetID,
		"sort_order":     input.SortOrder,
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if err := s.db.Model(&promotion).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating promotion: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("promotions"))
	return &promotion, nil
}

// ReorderPromotions applies new sort orders by id.
func (s *PromotionService) ReorderPromotions(order map[string]float64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for id, sortOrder := range order {
			if err := tx.Model(&models.Promotion{}).Where("id = ?", id).
				UpdateColumn("sort_order", sortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reordering promotions: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("promotions"))
	return nil
}

func (s *PromotionService) DeletePromotion(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Promotion{})
	if result.Error != nil {
		return fmt.Errorf("deleting promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcaster.Broadcast(SyncEvent("promotions"))
	return nil
}
