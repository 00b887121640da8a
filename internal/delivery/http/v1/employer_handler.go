package v1

import (
	"net/http"

	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	employerUC domain.EmployerUsecase
}

func NewEmployerHandler(r *gin.RouterGroup, employerUC domain.EmployerUsecase) {
	handler := &EmployerHandler{employerUC: employerUC}

	employers := r.Group("/employers")
	{
		employers.GET("/me", handler.GetProfile)
		employers.PUT("/me", handler.UpdateProfile)
	}

	// Search sits on the jobseekers collection but is an employer-only view
	r.GET("/jobseekers", handler.Search)
}

// GetProfile godoc
// @Summary      Get my employer profile
// @Description  Get the profile and verification status of the logged-in employer
// @Tags         employers
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.EmployerProfile}
// @Failure      401  {object}  response.Response
// @Router       /employers/me [get]
// @Security     BearerAuth
func (h *EmployerHandler) GetProfile(c *gin.Context) {
	profile, err := h.employerUC.GetMyProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer profile", profile)
}

// UpdateProfile godoc
// @Summary      Update my employer profile
// @Description  Create or update the employer profile. Changing identity fields after a rejection resubmits for review.
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        request body domain.EmployerProfile true "Profile fields"
// @Success      200  {object}  response.Response{data=domain.EmployerProfile}
// @Failure      400  {object}  response.Response
// @Router       /employers/me [put]
// @Security     BearerAuth
func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	var req domain.EmployerProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	profile, err := h.employerUC.UpdateMyProfile(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", profile)
}

// Search godoc
// @Summary      Search visible jobseeker profiles
// @Description  Verified employers only. Returns published profiles matching the filters.
// @Tags         employers
// @Produce      json
// @Param        city query string false "City filter"
// @Param        role query string false "Desired role filter"
// @Param        min_years query int false "Minimum years of experience"
// @Param        skill query []string false "Required skills, repeatable"
// @Param        min_age query int false "Minimum age"
// @Param        max_age query int false "Maximum age"
// @Param        page query int false "Page number"
// @Param        limit query int false "Items per page"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.JobSeekerProfile]}
// @Failure      403  {object}  response.Response
// @Router       /jobseekers [get]
// @Security     BearerAuth
func (h *EmployerHandler) Search(c *gin.Context) {
	var filter domain.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid search filters", nil)
		return
	}

	result, err := h.employerUC.SearchProfiles(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profiles fetched successfully", result)
}
