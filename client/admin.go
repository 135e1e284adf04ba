package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rentplatform/rentplatform-api/models"
)

// AdminService covers the administrator namespace. Calls fail with a 403
// APIError unless the session belongs to an admin.
type AdminService struct {
	c *Client
}

// ListUsers returns every user with balance and order history.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.AdminUserResponse, error) {
	var users []models.AdminUserResponse
	if err := s.c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetBalance sets a user's balance to an exact amount.
func (s *AdminService) SetBalance(ctx context.Context, email string, amount float64) error {
	body := map[string]any{"email": email, "amount": amount}
	return s.c.do(ctx, http.MethodPut, "/admin/users/balance", body, nil)
}

// CreatePromoCode registers a new promotion code.
func (s *AdminService) CreatePromoCode(ctx context.Context, code string, amount float64) (*models.PromoCodeResponse, error) {
	var promo models.PromoCodeResponse
	err := s.c.do(ctx, http.MethodPost, "/admin/promo-codes",
		models.PromoCodeCreateData{Code: code, Amount: amount}, &promo)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// ListPromoCodes returns every promotion code, newest first.
func (s *AdminService) ListPromoCodes(ctx context.Context) ([]models.PromoCodeResponse, error) {
	var codes []models.PromoCodeResponse
	if err := s.c.do(ctx, http.MethodGet, "/admin/promo-codes", nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// DeactivatePromoCode disables a code without deleting it.
func (s *AdminService) DeactivatePromoCode(ctx context.Context, id uint) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/promo-codes/%d", id), nil, nil)
}

// ListProducts returns every product, soft-deleted included, with
// credentials visible.
func (s *AdminService) ListProducts(ctx context.Context) ([]models.ProductAdminResponse, error) {
	var products []models.ProductAdminResponse
	if err := s.c.do(ctx, http.MethodGet, "/products/admin/list", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product with credentials.
func (s *AdminService) GetProduct(ctx context.Context, id uint) (*models.ProductAdminResponse, error) {
	var product models.ProductAdminResponse
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AddProduct creates a product.
func (s *AdminService) AddProduct(ctx context.Context, product models.ProductCreateData) error {
	return s.c.do(ctx, http.MethodPost, "/products/add", product, nil)
}

// UpdateProduct applies a partial update.
func (s *AdminService) UpdateProduct(ctx context.Context, id uint, update models.ProductUpdateData) (*models.ProductAdminResponse, error) {
	var product models.ProductAdminResponse
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), update, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product; permanent purges it with its orders.
func (s *AdminService) DeleteProduct(ctx context.Context, id uint, permanent bool) error {
	path := fmt.Sprintf("/products/%d", id)
	if permanent {
		path += "?permanent=true"
	}
	return s.c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AllOrders returns every order with the buyer's email.
func (s *AdminService) AllOrders(ctx context.Context) ([]models.OrderResponse, error) {
	var orders []models.OrderResponse
	if err := s.c.do(ctx, http.MethodGet, "/orders/all", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetOrderExpiry edits an order's expiry date directly.
func (s *AdminService) SetOrderExpiry(ctx context.Context, orderID uint, expiry models.OrderExpiryData) error {
	return s.c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/expiry", orderID), expiry, nil)
}

// CreateAnnouncement publishes an announcement.
func (s *AdminService) CreateAnnouncement(ctx context.Context, title, content string) (*models.AnnouncementResponse, error) {
	var announcement models.AnnouncementResponse
	err := s.c.do(ctx, http.MethodPost, "/admin/announcements",
		models.AnnouncementCreateData{Title: title, Content: content}, &announcement)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// ListAnnouncements returns every announcement, active or not.
func (s *AdminService) ListAnnouncements(ctx context.Context) ([]models.AnnouncementResponse, error) {
	var announcements []models.AnnouncementResponse
	if err := s.c.do(ctx, http.MethodGet, "/admin/announcements", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// UpdateAnnouncement edits or toggles an announcement.
func (s *AdminService) UpdateAnnouncement(ctx context.Context, id uint, update models.AnnouncementUpdateData) (*models.AnnouncementResponse, error) {
	var announcement models.AnnouncementResponse
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/announcements/%d", id), update, &announcement); err != nil {
		return nil, err
	}
	return &announcement, nil
}

// DeleteAnnouncement removes an announcement.
func (s *AdminService) DeleteAnnouncement(ctx context.Context, id uint) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/announcements/%d", id), nil, nil)
}
