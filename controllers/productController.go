package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/models"
	"github.com/rentplatform/rentplatform-api/utils"
	"gorm.io/gorm"
)

const (
	msgProductNotFound = "Product not found"
	msgInvalidProduct  = "Invalid product ID"
)

// ListProducts returns the public catalog: non-deleted products with
// secrets stripped and the rented flag computed from active orders.
func ListProducts(ctx *gin.Context) {
	var products []models.Product
	if result := initializers.DB.Order("id").Find(&products); result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	now := time.Now().UTC()
	response := make([]models.ProductPublicResponse, 0, len(products))
	for _, p := range products {
		var activeRentals int64
		initializers.DB.Model(&models.Order{}).
			Where("product_id = ? AND expires_at > ?", p.ID, now).
			Count(&activeRentals)

		response = append(response, models.ProductPublicResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Duration: p.Duration,
			Tags:     p.Tags,
			IsRented: activeRentals > 0,
		})
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// AdminListProducts returns every product, soft-deleted included, with
// credentials visible.
func AdminListProducts(ctx *gin.Context) {
	var products []models.Product
	if result := initializers.DB.Unscoped().Order("id").Find(&products); result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	response := make([]models.ProductAdminResponse, 0, len(products))
	for _, p := range products {
		response = append(response, p.ToAdminResponse())
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}

// GetProduct returns a single product with credentials (admin only)
func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidProduct)
		return
	}

	var product models.Product
	result := initializers.DB.Unscoped().First(&product, productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product.ToAdminResponse())
}

// AddProduct creates a product (admin only)
func AddProduct(ctx *gin.Context) {
	var data models.ProductCreateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(data.Name) > 255 {
		data.Name = data.Name[:255]
	}
	if len(data.Duration) > 50 {
		data.Duration = data.Duration[:50]
	}

	product := models.Product{
		Name:         data.Name,
		Price:        data.Price,
		Quantity:     data.Quantity,
		Duration:     data.Duration,
		Tags:         data.Tags,
		AccountInfo:  data.AccountInfo,
		PasswordInfo: data.PasswordInfo,
		OtpSecret:    data.OtpSecret,
	}
	if err := initializers.DB.Create(&product).Error; err != nil {
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to add product")
		return
	}

	sendMessageResponse(ctx, http.StatusCreated, "Product added successfully")
}

// UpdateProduct applies a partial update to a product (admin only)
func UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidProduct)
		return
	}

	var updateData models.ProductUpdateData
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var product models.Product
	if result := initializers.DB.Unscoped().First(&product, productID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		return
	}

	updates := map[string]any{}
	if updateData.Name != nil {
		updates["name"] = *updateData.Name
	}
	if updateData.Price != nil {
		updates["price"] = *updateData.Price
	}
	if updateData.Quantity != nil {
		updates["quantity"] = *updateData.Quantity
	}
	if updateData.Duration != nil {
		updates["duration"] = *updateData.Duration
	}
	if updateData.Tags != nil {
		updates["tags"] = *updateData.Tags
	}
	if updateData.AccountInfo != nil {
		updates["account_info"] = *updateData.AccountInfo
	}
	if updateData.PasswordInfo != nil {
		updates["password_info"] = *updateData.PasswordInfo
	}
	if updateData.OtpSecret != nil {
		updates["otp_secret"] = *updateData.OtpSecret
	}

	if len(updates) > 0 {
		if result := initializers.DB.Unscoped().Model(&product).Updates(updates); result.Error != nil {
			log.Println("Product update error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update product")
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, product.ToAdminResponse())
}

// DeleteProduct soft-deletes a product so the catalog hides it but order
// history keeps resolving. With ?permanent=true the row and its orders
// are removed for good.
func DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidProduct)
		return
	}

	var product models.Product
	if result := initializers.DB.Unscoped().First(&product, productID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		return
	}

	if ctx.Query("permanent") == "true" {
		err := initializers.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return tx.Unscoped().Delete(&product).Error
		})
		if err != nil {
			log.Println("Product purge error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		sendMessageResponse(ctx, http.StatusOK, "Product deleted permanently")
		return
	}

	if result := initializers.DB.Delete(&product); result.Error != nil {
		log.Println("Product delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	sendMessageResponse(ctx, http.StatusOK, "Product deleted successfully")
}

// CalcOtp derives the current one-time password for a stored secret
func CalcOtp(ctx *gin.Context) {
	secret := ctx.Query("secret")
	if secret == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing secret")
		return
	}

	otp, err := utils.GenerateOTP(secret)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid OTP secret: "+err.Error())
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"otp": otp})
}
