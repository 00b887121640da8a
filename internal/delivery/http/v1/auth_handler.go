package v1

import (
	"net/http"

	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Login, registration and password flows live with the external session
// provider. The backend only resolves the authenticated account.

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(r *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := r.Group("/auth")
	{
		auth.GET("/me", handler.Me)
	}
}

// Me godoc
// @Summary      Get current account
// @Description  Resolve the account behind the presented token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Account}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := c.GetString(string(domain.KeyAccountID))
	account, err := h.authUC.GetCurrentUser(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account details", account)
}
