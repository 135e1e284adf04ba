package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email                   string     `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword          string     `json:"-" gorm:"not null"`
	Role                    string     `json:"role" gorm:"default:user"`
	Balance                 float64    `json:"balance" gorm:"default:0"`
	IsVerified              bool       `json:"is_verified" gorm:"default:false"`
	VerificationCode        string     `json:"-"`
	VerificationCodeExpires *time.Time `json:"-"`
	ResetCode               string     `json:"-"`
	ResetCodeExpires        *time.Time `json:"-"`
	Orders                  []Order    `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

type RegisterData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type VerifyData struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResendVerificationData struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordData struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordData struct {
	Email       string `json:"email" binding:"required,email"`
	ResetCode   string `json:"reset_code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ChangePasswordData struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type RedeemCodeData struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse is the public view of a user, returned by login and /users/me.
type UserResponse struct {
	ID      uint    `json:"id"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
	Balance float64 `json:"balance"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// AdminUserResponse adds the order history for the admin user table.
type AdminUserResponse struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Balance   float64         `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	Orders    []OrderResponse `json:"orders"`
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Balance: u.Balance,
	}
}
