package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name         string         `json:"name" binding:"required"`
	Price        float64        `json:"price" binding:"required"`
	Quantity     int            `json:"quantity" gorm:"default:0"`
	Duration     string         `json:"duration" binding:"required"`
	Tags         datatypes.JSON `json:"tags"`
	AccountInfo  string         `json:"account" gorm:"type:text;not null"`
	PasswordInfo string         `json:"password" gorm:"not null"`
	OtpSecret    string         `json:"otp_secret"`
}

type ProductCreateData struct {
	Name         string         `json:"name" binding:"required"`
	Price        float64        `json:"price" binding:"required"`
	Quantity     int            `json:"quantity"`
	Duration     string         `json:"duration" binding:"required"`
	Tags         datatypes.JSON `json:"tags"`
	AccountInfo  string         `json:"account" binding:"required"`
	PasswordInfo string         `json:"password" binding:"required"`
	OtpSecret    string         `json:"otp_secret"`
}

type ProductUpdateData struct {
	Name         *string         `json:"name"`
	Price        *float64        `json:"price"`
	Quantity     *int            `json:"quantity"`
	Duration     *string         `json:"duration"`
	Tags         *datatypes.JSON `json:"tags"`
	AccountInfo  *string         `json:"account_info"`
	PasswordInfo *string         `json:"password_info"`
	OtpSecret    *string         `json:"otp_secret"`
}

// ProductPublicResponse is the catalog view: secrets stripped, rental
// availability computed from active orders.
type ProductPublicResponse struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Price    float64        `json:"price"`
	Quantity int            `json:"quantity"`
	Duration string         `json:"duration"`
	Tags     datatypes.JSON `json:"tags,omitempty"`
	IsRented bool           `json:"is_rented"`
}

// ProductAdminResponse includes credentials and the soft-delete state.
type ProductAdminResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Price        float64        `json:"price"`
	Quantity     int            `json:"quantity"`
	Duration     string         `json:"duration"`
	Tags         datatypes.JSON `json:"tags,omitempty"`
	AccountInfo  string         `json:"account_info"`
	PasswordInfo string         `json:"password_info"`
	OtpSecret    string         `json:"otp_secret,omitempty"`
	IsDeleted    bool           `json:"is_deleted"`
	DeletedAt    *time.Time     `json:"deleted_at,omitempty"`
}

func (p Product) ToAdminResponse() ProductAdminResponse {
	resp := ProductAdminResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Duration:     p.Duration,
		Tags:         p.Tags,
		AccountInfo:  p.AccountInfo,
		PasswordInfo: p.PasswordInfo,
		OtpSecret:    p.OtpSecret,
		IsDeleted:    p.DeletedAt.Valid,
	}
	if p.DeletedAt.Valid {
		resp.DeletedAt = &p.DeletedAt.Time
	}
	return resp
}

// RentalDays parses the leading integer of the duration string
// (e.g. "30 Ngày" -> 30). Durations without a number rent for 30 days.
func (p Product) RentalDays() int {
	fields := strings.Fields(p.Duration)
	if len(fields) > 0 {
		if days, err := strconv.Atoi(fields[0]); err == nil && days > 0 {
			return days
		}
	}
	return 30
}
