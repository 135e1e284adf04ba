package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/middlewares"
	"github.com/rentplatform/rentplatform-api/models"
	"github.com/rentplatform/rentplatform-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Verification and reset codes expire after this window
	codeValidity = 10 * time.Minute

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgEmailRegistered       = "Email already registered"
	msgPasswordTooLong       = "Password is too long. Please use a password with 72 bytes or fewer."
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "Incorrect email or password"
	msgEmailNotVerified      = "Email not verified"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserNotFound          = "User not found"
	msgAlreadyVerified       = "User already verified"
	msgInvalidCode           = "Invalid verification code"
	msgCodeExpired           = "Verification code expired"
	msgInvalidResetCode      = "Invalid reset code"
	msgResetCodeExpired      = "Reset code expired"
	msgResetSent             = "If the email exists, a reset code has been sent"
	msgRegistered            = "Registration successful. Please verify your email."
	msgVerified              = "Email verified successfully"
	msgResendOK              = "Verification code resent successfully"
	msgPasswordReset         = "Password reset successfully"
	msgWrongOldPassword      = "Incorrect old password"
	msgPasswordChanged       = "Password changed successfully"
	msgInvalidPromo          = "Invalid or inactive promotion code"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, detail string) {
	sendJSONResponse(ctx, status, gin.H{"detail": detail})
}

func sendMessageResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

func sendVerificationCodeEmail(user models.User, code string) error {
	emailData := utils.EmailData{
		Code:    code,
		Message: "Mã xác thực của bạn là:",
	}

	templatePath := filepath.Join("templates", "verify_email.html")
	return utils.SendEmail(user.Email, "Mã xác thực tài khoản - Rent Platform", emailData, templatePath)
}

func sendPasswordResetCodeEmail(user models.User, code string) error {
	emailData := utils.EmailData{
		Code:    code,
		Message: "Bạn đã yêu cầu đặt lại mật khẩu. Mã xác nhận của bạn là:",
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return utils.SendEmail(user.Email, "Mã đặt lại mật khẩu - Rent Platform", emailData, templatePath)
}

// Register handles user registration with email verification
func Register(ctx *gin.Context) {
	var registerData models.RegisterData
	if err := ctx.ShouldBindJSON(&registerData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	// bcrypt truncates beyond 72 bytes, reject instead of silently accepting
	if len(registerData.Password) > 72 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPasswordTooLong)
		return
	}

	if _, err := findUserByEmail(registerData.Email); err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailRegistered)
		return
	}

	hashedPassword, err := hashPassword(registerData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		log.Println("Code generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	expiresAt := time.Now().UTC().Add(codeValidity)

	user := models.User{
		Email:                   registerData.Email,
		HashedPassword:          hashedPassword,
		Role:                    "user",
		IsVerified:              false,
		VerificationCode:        code,
		VerificationCodeExpires: &expiresAt,
	}

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendVerificationCodeEmail(user, code); err != nil {
		log.Println("Error sending verification email:", err)
	}

	sendMessageResponse(ctx, http.StatusOK, msgRegistered)
}

// Verify confirms a registration using the emailed code
func Verify(ctx *gin.Context) {
	var verifyData models.VerifyData
	if err := ctx.ShouldBindJSON(&verifyData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(verifyData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if user.IsVerified {
		sendErrorResponse(ctx, http.StatusBadRequest, msgAlreadyVerified)
		return
	}

	if user.VerificationCode == "" || user.VerificationCode != verifyData.Code {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCode)
		return
	}

	if user.VerificationCodeExpires != nil && user.VerificationCodeExpires.Before(time.Now().UTC()) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgCodeExpired)
		return
	}

	result := initializers.DB.Model(&user).Updates(map[string]any{
		"is_verified":               true,
		"verification_code":         "",
		"verification_code_expires": nil,
	})
	if result.Error != nil {
		log.Println("Verification error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, msgVerified)
}

// ResendVerification issues a fresh verification code
func ResendVerification(ctx *gin.Context) {
	var resendData models.ResendVerificationData
	if err := ctx.ShouldBindJSON(&resendData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(resendData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if user.IsVerified {
		sendErrorResponse(ctx, http.StatusBadRequest, msgAlreadyVerified)
		return
	}

	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		log.Println("Code generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	expiresAt := time.Now().UTC().Add(codeValidity)

	result := initializers.DB.Model(&user).Updates(map[string]any{
		"verification_code":         code,
		"verification_code_expires": expiresAt,
	})
	if result.Error != nil {
		log.Println("Error saving verification code:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendVerificationCodeEmail(user, code); err != nil {
		log.Println("Error sending verification email:", err)
	}

	sendMessageResponse(ctx, http.StatusOK, msgResendOK)
}

// Login authenticates a user and issues a bearer token
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.HashedPassword, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.IsVerified {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgEmailNotVerified)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, models.AuthResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		User:        user.ToResponse(),
	})
}

// GetMe returns the authenticated user, used for session hydration
func GetMe(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user.ToResponse())
}

// ForgotPassword mails a reset code without revealing account existence
func ForgotPassword(ctx *gin.Context) {
	var forgotData models.ForgotPasswordData
	if err := ctx.ShouldBindJSON(&forgotData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(forgotData.Email)
	if err != nil {
		sendMessageResponse(ctx, http.StatusOK, msgResetSent)
		return
	}

	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		log.Println("Reset code generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	expiresAt := time.Now().UTC().Add(codeValidity)

	result := initializers.DB.Model(&user).Updates(map[string]any{
		"reset_code":         code,
		"reset_code_expires": expiresAt,
	})
	if result.Error != nil {
		log.Println("Error saving reset code:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendPasswordResetCodeEmail(user, code); err != nil {
		log.Println("Error sending password reset email:", err)
	}

	sendMessageResponse(ctx, http.StatusOK, msgResetSent)
}

// ResetPassword sets a new password using an emailed reset code
func ResetPassword(ctx *gin.Context) {
	var resetData models.ResetPasswordData
	if err := ctx.ShouldBindJSON(&resetData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(resetData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if user.ResetCode == "" || user.ResetCode != resetData.ResetCode {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidResetCode)
		return
	}

	if user.ResetCodeExpires != nil && user.ResetCodeExpires.Before(time.Now().UTC()) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgResetCodeExpired)
		return
	}

	hashedPassword, err := hashPassword(resetData.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	result := initializers.DB.Model(&user).Updates(map[string]any{
		"hashed_password":    hashedPassword,
		"reset_code":         "",
		"reset_code_expires": nil,
	})
	if result.Error != nil {
		log.Println("Error resetting password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, msgPasswordReset)
}

// ChangePassword updates the password of the authenticated user
func ChangePassword(ctx *gin.Context) {
	var changeData models.ChangePasswordData
	if err := ctx.ShouldBindJSON(&changeData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	if err := comparePasswords(user.HashedPassword, changeData.OldPassword); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgWrongOldPassword)
		return
	}

	hashedPassword, err := hashPassword(changeData.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if result := initializers.DB.Model(&user).Update("hashed_password", hashedPassword); result.Error != nil {
		log.Println("Error changing password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendMessageResponse(ctx, http.StatusOK, msgPasswordChanged)
}

// RedeemCode credits a promotion code to the authenticated user's balance.
// A code is redeemable once: redemption deactivates it in the same
// transaction that credits the balance.
func RedeemCode(ctx *gin.Context) {
	var redeemData models.RedeemCodeData
	if err := ctx.ShouldBindJSON(&redeemData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	var newBalance float64
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var promo models.PromotionCode
		if err := tx.Where("code = ? AND is_active = ?", redeemData.Code, true).First(&promo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errStatus(http.StatusBadRequest, msgInvalidPromo)
			}
			return err
		}

		// guarded flip: a concurrent redemption of the same code loses here
		result := tx.Model(&models.PromotionCode{}).
			Where("id = ? AND is_active = ?", promo.ID, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStatus(http.StatusBadRequest, msgInvalidPromo)
		}

		if err := tx.Model(&user).Update("balance", gorm.Expr("balance + ?", promo.Amount)).Error; err != nil {
			return err
		}
		if err := tx.First(&user, user.ID).Error; err != nil {
			return err
		}
		newBalance = user.Balance
		return nil
	})
	if err != nil {
		respondStatusError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Code redeemed successfully",
		"balance": newBalance,
	})
}
