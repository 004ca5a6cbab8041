// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

// AdminService manages the role reference collections and the customer
// directory. Adding an email to a collection changes that account's
// derived role on its next request; no role is ever written to the
// user row.
type AdminService struct {
	db          *gorm.DB
	broadcaster Broadcaster
}

func NewAdminService(db *gorm.DB, broadcaster Broadcaster) *AdminService {
	return &AdminService{db: db, broadcaster: broadcaster}
}

type RoleMemberInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// CustomerSummary is a user row with aggregated order statistics for
// the admin customer directory.
type CustomerSummary struct {
	models.User
	TotalOrders   int     `json:"total_orders"`
	TotalSpent    float64 `json:"total_spent"`
	TotalItems    int     `json:"total_items"`
	HasProcessing bool    `json:"has_processing"`
	HasShipped    bool    `json:"has_shipped"`
	HasCancelled  bool    `json:"has_cancelled"`
}

// CustomerDetail adds the full order history to a summary.
type CustomerDetail struct {
	CustomerSummary
	Orders []models.Order `json:"orders"`
}

func (s *AdminService) ListPartners() ([]models.Partner, error) {
	var partners []models.Partner
	err := s.db.Order("created_at DESC").Find(&partners).Error
	return partners, err
}

func (s *AdminService) AddPartner(input RoleMemberInput) (*models.Partner, error) {
	if err := s.ensureNotMember(&models.Partner{}, input.Email); err != nil {
		return nil, err
	}
	partner := &models.Partner{Email: input.Email, Name: input.Name}
	if err := s.db.Create(partner).Error; err != nil {
		return nil, fmt.Errorf("creating partner: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("partners"))
	return partner, nil
}

func (s *AdminService) RemovePartner(id string) error {
	return s.removeMember(&models.Partner{}, id, "partners")
}

func (s *AdminService) ListAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	err := s.db.Order("created_at DESC").Find(&admins).Error
	return admins, err
}

func (s *AdminService) AddAdmin(input RoleMemberInput) (*models.Admin, error) {
	if err := s.ensureNotMember(&models.Admin{}, input.Email); err != nil {
		return nil, err
	}
	admin := &models.Admin{Email: input.Email, Name: input.Name}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("admins"))
	return admin, nil
}

func (s *AdminService) RemoveAdmin(id string) error {
	return s.removeMember(&models.Admin{}, id, "admins")
}

func (s *AdminService) ListSubscribers() ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := s.db.Order("created_at DESC").Find(&subscribers).Error
	return subscribers, err
}

func (s *AdminService) AddSubscriber(input RoleMemberInput) (*models.Subscriber, error) {
	if err := s.ensureNotMember(&models.Subscriber{}, input.Email); err != nil {
		return nil, err
	}
	subscriber := &models.Subscriber{Email: input.Email, Name: input.Name}
	if err := s.db.Create(subscriber).Error; err != nil {
		return nil, fmt.Errorf("creating subscriber: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("subscribers"))
	return subscriber, nil
}

func (s *AdminService) RemoveSubscriber(id string) error {
	return s.removeMember(&models.Subscriber{}, id, "subscribers")
}

// ListCustomers returns every user with order aggregates, sorted by
// sortBy: total_spent, total_items, or created_at (default).
func (s *AdminService) ListCustomers(sortBy string) ([]CustomerSummary, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}

	var orders []models.Order
	if err := s.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	byUser := map[string][]models.Order{}
	for _, order := range orders {
		byUser[order.UserID] = append(byUser[order.UserID], order)
	}

	summaries := make([]CustomerSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, summarize(user, byUser[user.ID]))
	}

	switch sortBy {
	case "total_items":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].TotalItems > summaries[j].TotalItems
		})
	case "total_spent":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].TotalSpent > summaries[j].TotalSpent
		})
	default:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		})
	}
	return summaries, nil
}

// GetCustomer returns one customer with their full order history.
func (s *AdminService) GetCustomer(customerID string) (*CustomerDetail, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	var orders []models.Order
	if err := s.db.Preload("Items").Where("user_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("loading customer orders: %w", err)
	}

	return &CustomerDetail{
		CustomerSummary: summarize(user, orders),
		Orders:          orders,
	}, nil
}

func summarize(user models.User, orders []models.Order) CustomerSummary {
	summary := CustomerSummary{User: user, TotalOrders: len(orders)}
	for _, order := range orders {
		summary.TotalSpent += order.Total
		for _, item := range order.Items {
			summary.TotalItems += item.Quantity
		}
		switch order.Status {
		case models.OrderStatusPending, models.OrderStatusPreparing:
			summary.HasProcessing = true
		case models.OrderStatusShipped, models.OrderStatusOutForDelivery:
			summary.HasShipped = true
		case models.OrderStatusCancelled:
			summary.HasCancelled = true
		}
	}
	return summary
}

func (s *AdminService) ensureNotMember(model interface{}, email string) error {
	var count int64
	if err := s.db.Model(model).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if count > 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *AdminService) removeMember(model interface{}, id, table string) error {
	result := s.db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("removing member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcaster.Broadcast(SyncEvent(table))
	return nil
}
