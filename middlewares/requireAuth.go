package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/models"
)

const msgInvalidCredentials = "Invalid authentication credentials"

func abortUnauthorized(ctx *gin.Context) {
	ctx.Header("WWW-Authenticate", "Bearer")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": msgInvalidCredentials})
}

// RequireAuth validates the bearer token and loads the authenticated user
// into the context under "user".
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(ctx)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(ctx)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(ctx)
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			abortUnauthorized(ctx)
			return
		}

		var user models.User
		if result := initializers.DB.First(&user, uint(sub)); result.Error != nil {
			abortUnauthorized(ctx)
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

// CurrentUser returns the user placed in the context by RequireAuth.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
