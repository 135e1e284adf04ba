package models

import (
	"time"

	"gorm.io/gorm"
)

type PromotionCode struct {
	gorm.Model
	Code     string  `json:"code" gorm:"uniqueIndex;not null"`
	Amount   float64 `json:"amount" gorm:"not null"`
	IsActive bool    `json:"is_active" gorm:"default:true"`
}

type PromoCodeCreateData struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type PromoCodeResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Amount    float64   `json:"amount"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (p PromotionCode) ToResponse() PromoCodeResponse {
	return PromoCodeResponse{
		ID:        p.ID,
		Code:      p.Code,
		Amount:    p.Amount,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
