package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/middlewares"
	"github.com/rentplatform/rentplatform-api/models"
	"gorm.io/gorm"
)

const msgOrderNotFound = "Order not found"

// BuyProduct rents a product: balance and stock are checked and adjusted
// and the credentials are snapshotted into the order in one transaction.
func BuyProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidProduct)
		return
	}

	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errStatus(http.StatusNotFound, msgProductNotFound)
			}
			return err
		}

		// guarded decrements: concurrent purchases cannot oversell the last
		// unit or double-spend a balance
		result := tx.Model(&models.Product{}).
			Where("id = ? AND quantity > 0", product.ID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStatus(http.StatusBadRequest, "Product out of stock")
		}

		result = tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", user.ID, product.Price).
			Update("balance", gorm.Expr("balance - ?", product.Price))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStatus(http.StatusBadRequest,
				fmt.Sprintf("Insufficient balance. You need %g but only have %g.", product.Price, user.Balance))
		}

		now := time.Now().UTC()
		order := models.Order{
			UserID:       user.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			Price:        product.Price,
			AccountInfo:  product.AccountInfo,
			PasswordInfo: product.PasswordInfo,
			OtpInfo:      product.OtpSecret,
			PurchaseTime: now,
			ExpiresAt:    now.AddDate(0, 0, product.RentalDays()),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		respondStatusError(ctx, err)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, "Product purchased successfully")
}

// RenewOrder extends an existing rental at the product's current price.
// Expired rentals restart from now, active ones extend from their expiry.
func RenewOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errStatus(http.StatusNotFound, msgOrderNotFound)
			}
			return err
		}

		var product models.Product
		if err := tx.Unscoped().First(&product, order.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errStatus(http.StatusBadRequest, "Product no longer available for renewal")
			}
			return err
		}
		if product.DeletedAt.Valid {
			return errStatus(http.StatusBadRequest, "Product no longer available for renewal")
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", user.ID, product.Price).
			Update("balance", gorm.Expr("balance - ?", product.Price))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStatus(http.StatusBadRequest,
				fmt.Sprintf("Insufficient balance. You need %g but only have %g.", product.Price, user.Balance))
		}

		now := time.Now().UTC()
		from := order.ExpiresAt
		if from.Before(now) {
			from = now
		}
		return tx.Model(&order).Update("expires_at", from.AddDate(0, 0, product.RentalDays())).Error
	})
	if err != nil {
		respondStatusError(ctx, err)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, "Order renewed successfully")
}

// GetHistory lists the authenticated user's orders, newest first
func GetHistory(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	var orders []models.Order
	result := initializers.DB.Where("user_id = ?", user.ID).Order("purchase_time desc").Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	response := make([]models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, o.ToResponse())
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// GetAllOrders lists every order with the buyer's email (admin only)
func GetAllOrders(ctx *gin.Context) {
	var orders []models.Order
	result := initializers.DB.Order("purchase_time desc").Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	userIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
	}

	emailByID := map[uint]string{}
	if len(userIDs) > 0 {
		var users []models.User
		if result := initializers.DB.Where("id IN ?", userIDs).Find(&users); result.Error != nil {
			log.Println("User email lookup error:", result.Error)
		}
		for _, u := range users {
			emailByID[u.ID] = u.Email
		}
	}

	response := make([]models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp := o.ToResponse()
		resp.UserEmail = emailByID[o.UserID]
		response = append(response, resp)
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// SetOrderExpiry lets an admin edit an order's expiry date directly
func SetOrderExpiry(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var expiryData models.OrderExpiryData
	if err := ctx.ShouldBindJSON(&expiryData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("expires_at", expiryData.ExpiresAt.UTC())
	if result.Error != nil {
		log.Println("Order expiry update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, "Order expiry updated successfully")
}

// statusError carries an HTTP status out of a gorm transaction so the
// handler can answer with the right code.
type statusError struct {
	status int
	detail string
}

func (e statusError) Error() string { return e.detail }

func errStatus(status int, detail string) error {
	return statusError{status: status, detail: detail}
}

func respondStatusError(ctx *gin.Context, err error) {
	var se statusError
	if errors.As(err, &se) {
		sendErrorResponse(ctx, se.status, se.detail)
		return
	}
	log.Println("Transaction error:", err)
	sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
}
