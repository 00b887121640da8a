package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-talentmatch-backend/config"
	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware(cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		// Fetch fresh account data from DB to get the correct Role.
		// We do NOT rely on the JWT role claim as it might be stale.
		account, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Account not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAccountID), sub)
		c.Set(string(domain.KeyEmail), email)
		c.Set(string(domain.KeyRole), account.Role)

		// Mirror into the request context so the usecase layer sees the same
		// identity regardless of transport.
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyAccountID, sub)
		ctx = context.WithValue(ctx, domain.KeyEmail, email)
		ctx = context.WithValue(ctx, domain.KeyRole, account.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
