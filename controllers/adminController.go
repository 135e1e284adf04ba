package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/models"
)

type balanceData struct {
	Email  string  `json:"email" binding:"required,email"`
	Amount float64 `json:"amount"`
}

// GetAllUsers lists every user with balance and order history (admin only)
func GetAllUsers(ctx *gin.Context) {
	var users []models.User
	result := initializers.DB.Preload("Orders").Order("id").Find(&users)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	response := make([]models.AdminUserResponse, 0, len(users))
	for _, u := range users {
		orders := make([]models.OrderResponse, 0, len(u.Orders))
		for _, o := range u.Orders {
			orders = append(orders, o.ToResponse())
		}
		response = append(response, models.AdminUserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			Balance:   u.Balance,
			CreatedAt: u.CreatedAt,
			Orders:    orders,
		})
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// SetUserBalance sets a user's balance to an exact amount (admin only)
func SetUserBalance(ctx *gin.Context) {
	var data balanceData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if data.Amount < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Balance cannot be negative.")
		return
	}

	user, err := findUserByEmail(data.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, fmt.Sprintf("User with email %s not found.", data.Email))
		return
	}

	if result := initializers.DB.Model(&user).Update("balance", data.Amount); result.Error != nil {
		log.Println("Balance update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendMessageResponse(ctx, http.StatusOK,
		fmt.Sprintf("Successfully set balance for %s to %g.", data.Email, data.Amount))
}

// CreatePromoCode registers a new promotion code (admin only)
func CreatePromoCode(ctx *gin.Context) {
	var promoData models.PromoCodeCreateData
	if err := ctx.ShouldBindJSON(&promoData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if promoData.Amount <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Amount must be positive.")
		return
	}

	var existing models.PromotionCode
	if result := initializers.DB.Where("code = ?", promoData.Code).First(&existing); result.Error == nil {
		sendErrorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("Promotion code '%s' already exists.", promoData.Code))
		return
	}

	promo := models.PromotionCode{
		Code:     promoData.Code,
		Amount:   promoData.Amount,
		IsActive: true,
	}
	if result := initializers.DB.Create(&promo); result.Error != nil {
		log.Println("Promo code creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, promo.ToResponse())
}

// GetAllPromoCodes lists every promotion code, newest first (admin only)
func GetAllPromoCodes(ctx *gin.Context) {
	var codes []models.PromotionCode
	result := initializers.DB.Order("created_at desc").Find(&codes)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch promotion codes")
		return
	}

	response := make([]models.PromoCodeResponse, 0, len(codes))
	for _, c := range codes {
		response = append(response, c.ToResponse())
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// DeactivatePromoCode soft-disables a promotion code (admin only)
func DeactivatePromoCode(ctx *gin.Context) {
	codeID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid promotion code ID")
		return
	}

	var promo models.PromotionCode
	if result := initializers.DB.First(&promo, codeID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Promotion code not found.")
		return
	}

	if !promo.IsActive {
		sendErrorResponse(ctx, http.StatusBadRequest, "Code is already inactive.")
		return
	}

	if result := initializers.DB.Model(&promo).Update("is_active", false); result.Error != nil {
		log.Println("Promo code deactivation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendMessageResponse(ctx, http.StatusOK,
		fmt.Sprintf("Promotion code '%s' has been deactivated.", promo.Code))
}
