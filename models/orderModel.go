package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	ProductID    uint      `json:"product_id" gorm:"not null;index"`
	ProductName  string    `json:"product_name" gorm:"not null"`
	Price        float64   `json:"price"`
	AccountInfo  string    `json:"account_info" gorm:"type:text"`
	PasswordInfo string    `json:"password_info"`
	OtpInfo      string    `json:"otp_info"`
	PurchaseTime time.Time `json:"purchase_time"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type OrderExpiryData struct {
	ExpiresAt time.Time `json:"expires_at" binding:"required"`
}

// OrderResponse is the history view. Credentials are included: the order
// is the only place a buyer can read them. UserEmail is set for admins.
type OrderResponse struct {
	ID           uint      `json:"id"`
	ProductName  string    `json:"product_name"`
	Price        float64   `json:"price"`
	AccountInfo  string    `json:"account_info"`
	PasswordInfo string    `json:"password_info"`
	OtpInfo      string    `json:"otp_info,omitempty"`
	PurchaseTime time.Time `json:"purchase_time"`
	ExpiresAt    time.Time `json:"expires_at"`
	IsExpired    bool      `json:"is_expired"`
	UserEmail    string    `json:"user_email,omitempty"`
}

func (o Order) ToResponse() OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		ProductName:  o.ProductName,
		Price:        o.Price,
		AccountInfo:  o.AccountInfo,
		PasswordInfo: o.PasswordInfo,
		OtpInfo:      o.OtpInfo,
		PurchaseTime: o.PurchaseTime,
		ExpiresAt:    o.ExpiresAt,
		IsExpired:    o.ExpiresAt.Before(time.Now().UTC()),
	}
}
