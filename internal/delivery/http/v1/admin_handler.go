package v1

import (
	"net/http"
	"strconv"

	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	verificationUC domain.VerificationUsecase
}

func NewAdminHandler(r *gin.RouterGroup, verificationUC domain.VerificationUsecase) {
	handler := &AdminHandler{verificationUC: verificationUC}

	admin := r.Group("/admin")
	{
		admin.GET("/employers", handler.ListEmployers)
		admin.POST("/employers/:id/review", handler.Review)
	}
}

// ListEmployers godoc
// @Summary      List employers for review
// @Description  Admin queue of employer profiles, filterable by verification status
// @Tags         admin
// @Produce      json
// @Param        status query string false "Filter by status (pending, approved, rejected)"
// @Param        page query int false "Page number"
// @Param        limit query int false "Items per page"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.EmployerProfile]}
// @Failure      403  {object}  response.Response
// @Router       /admin/employers [get]
// @Security     BearerAuth
func (h *AdminHandler) ListEmployers(c *gin.Context) {
	var filter domain.EmployerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid filters", nil)
		return
	}

	result, err := h.verificationUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employers fetched successfully", result)
}

type ReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject reset"`
	Notes  string `json:"notes"`
}

// Review godoc
// @Summary      Review an employer verification
// @Description  Approve, reject or reset an employer's verification. Rejections require notes.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Employer profile ID"
// @Param        request body ReviewRequest true "Action and notes"
// @Success      200  {object}  response.Response{data=domain.EmployerProfile}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /admin/employers/{id}/review [post]
// @Security     BearerAuth
func (h *AdminHandler) Review(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Action must be approve, reject or reset", nil)
		return
	}

	profile, err := h.verificationUC.Review(c.Request.Context(), id, req.Action, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review recorded", profile)
}
