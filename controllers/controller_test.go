package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/middlewares"
	"github.com/rentplatform/rentplatform-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires the full router against a fresh in-memory database.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.PromotionCode{},
		&models.Announcement{},
	))
	initializers.DB = db

	server := gin.New()
	registerRoutes(server)
	return server
}

// registerRoutes mirrors main.go without pulling in package main.
func registerRoutes(server *gin.Engine) {
	server.GET("/", GetHome)
	server.GET("/health", GetHealth)
	server.GET("/announcements", ListActiveAnnouncements)

	users := server.Group("/users")
	users.POST("/register", Register)
	users.POST("/verify", Verify)
	users.POST("/resend-verification", ResendVerification)
	users.POST("/login", Login)
	users.POST("/forgot-password", ForgotPassword)
	users.POST("/reset-password", ResetPassword)
	users.GET("/me", middlewares.RequireAuth(), GetMe)
	users.POST("/change-password", middlewares.RequireAuth(), ChangePassword)
	users.POST("/redeem-code", middlewares.RequireAuth(), RedeemCode)

	products := server.Group("/products")
	products.GET("/list", ListProducts)
	products.GET("/calc-otp", CalcOtp)
	productsAdmin := products.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
	productsAdmin.GET("/admin/list", AdminListProducts)
	productsAdmin.POST("/add", AddProduct)
	productsAdmin.GET("/:id", GetProduct)
	productsAdmin.PUT("/:id", UpdateProduct)
	productsAdmin.DELETE("/:id", DeleteProduct)

	orders := server.Group("/orders", middlewares.RequireAuth())
	orders.POST("/buy/:productId", BuyProduct)
	orders.POST("/renew/:orderId", RenewOrder)
	orders.GET("/history", GetHistory)
	ordersAdmin := orders.Group("", middlewares.RequireAdmin())
	ordersAdmin.GET("/all", GetAllOrders)
	ordersAdmin.PUT("/:orderId/expiry", SetOrderExpiry)

	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	admin.GET("/users", GetAllUsers)
	admin.PUT("/users/balance", SetUserBalance)
	admin.POST("/promo-codes", CreatePromoCode)
	admin.GET("/promo-codes", GetAllPromoCodes)
	admin.DELETE("/promo-codes/:id", DeactivatePromoCode)
	admin.POST("/announcements", CreateAnnouncement)
	admin.GET("/announcements", AdminListAnnouncements)
	admin.PUT("/announcements/:id", UpdateAnnouncement)
	admin.DELETE("/announcements/:id", DeleteAnnouncement)
}

func createTestUser(t *testing.T, email, password, role string, balance float64) models.User {
	t.Helper()
	hashed, err := hashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
		Balance:        balance,
		IsVerified:     true,
	}
	require.NoError(t, initializers.DB.Create(&user).Error)
	return user
}

func createTestProduct(t *testing.T, name string, price float64, quantity int, duration string) models.Product {
	t.Helper()
	product := models.Product{
		Name:         name,
		Price:        price,
		Quantity:     quantity,
		Duration:     duration,
		AccountInfo:  "account@stream.example",
		PasswordInfo: "hunter2",
		OtpSecret:    "GEZDGNBVGEZDGNBVGEZDGNBV",
	}
	require.NoError(t, initializers.DB.Create(&product).Error)
	return product
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := generateJWT(user)
	require.NoError(t, err)
	return token
}

// doRequest performs a request and returns the recorder. A non-empty token
// is attached as a bearer credential.
func doRequest(server *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value))
	return value
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody[map[string]any](t, rec)
	detail, _ := body["detail"].(string)
	return detail
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func withinOneMinute(t *testing.T, expected, actual time.Time) {
	t.Helper()
	diff := expected.Sub(actual)
	if diff < 0 {
		diff = -diff
	}
	require.LessOrEqual(t, diff, time.Minute)
}
