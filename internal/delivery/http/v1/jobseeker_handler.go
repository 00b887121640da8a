package v1

import (
	"net/http"

	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobseekerHandler struct {
	jobseekerUC domain.JobSeekerUsecase
}

func NewJobseekerHandler(r *gin.RouterGroup, jobseekerUC domain.JobSeekerUsecase) {
	handler := &JobseekerHandler{jobseekerUC: jobseekerUC}

	me := r.Group("/jobseekers/me")
	{
		me.GET("", handler.GetProfile)
		me.PUT("", handler.UpdateProfile)
		me.POST("/visibility", handler.SetVisibility)
		me.GET("/cv", handler.GetCV)
		me.PUT("/cv/sections", handler.WriteSections)
		me.PUT("/cv/sections/:type", handler.WriteSection)
		me.DELETE("/cv/sections/:type", handler.DeleteSection)
	}
}

// GetProfile godoc
// @Summary      Get my jobseeker profile
// @Description  Get the profile of the currently logged-in jobseeker
// @Tags         jobseekers
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.JobSeekerProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobseekers/me [get]
// @Security     BearerAuth
func (h *JobseekerHandler) GetProfile(c *gin.Context) {
	profile, err := h.jobseekerUC.GetMyProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobseeker profile", profile)
}

// UpdateProfileRequest carries the editable profile fields. Phone and age are
// accepted here but hidden on the entity, so they come in through writes and
// never leave through reads.
type UpdateProfileRequest struct {
	FullName        string `json:"full_name"`
	City            string `json:"city"`
	DesiredRole     string `json:"desired_role"`
	Bio             string `json:"bio"`
	YearsExperience int    `json:"years_experience"`
	Age             int    `json:"age"`
	Phone           string `json:"phone"`
}

// UpdateProfile godoc
// @Summary      Update my jobseeker profile
// @Description  Create or update the display fields of the profile
// @Tags         jobseekers
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200  {object}  response.Response{data=domain.JobSeekerProfile}
// @Failure      400  {object}  response.Response
// @Router       /jobseekers/me [put]
// @Security     BearerAuth
func (h *JobseekerHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	profile, err := h.jobseekerUC.UpdateMyProfile(c.Request.Context(), &domain.JobSeekerProfile{
		FullName:        req.FullName,
		City:            req.City,
		DesiredRole:     req.DesiredRole,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
		Age:             req.Age,
		Phone:           req.Phone,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", profile)
}

type SetVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// SetVisibility godoc
// @Summary      Publish or hide my profile
// @Description  Publishing requires a complete profile and locks the CV; hiding always succeeds
// @Tags         jobseekers
// @Accept       json
// @Produce      json
// @Param        request body SetVisibilityRequest true "Target visibility"
// @Success      200  {object}  response.Response{data=domain.JobSeekerProfile}
// @Failure      400  {object}  response.Response
// @Router       /jobseekers/me/visibility [post]
// @Security     BearerAuth
func (h *JobseekerHandler) SetVisibility(c *gin.Context) {
	var req SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Field visible is required", nil)
		return
	}

	profile, err := h.jobseekerUC.SetVisibility(c.Request.Context(), *req.Visible)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Visibility updated", profile)
}

// GetCV godoc
// @Summary      Get my CV
// @Description  Get the CV document with its ordered sections
// @Tags         jobseekers
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CVDocument}
// @Failure      404  {object}  response.Response
// @Router       /jobseekers/me/cv [get]
// @Security     BearerAuth
func (h *JobseekerHandler) GetCV(c *gin.Context) {
	cv, err := h.jobseekerUC.GetMyCV(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV document", cv)
}

type WriteSectionRequest struct {
	Content map[string]interface{} `json:"content" binding:"required"`
}

// WriteSection godoc
// @Summary      Write one CV section
// @Description  Create or replace a section. Rejected with 423 while the profile is published.
// @Tags         jobseekers
// @Accept       json
// @Produce      json
// @Param        type path string true "Section type"
// @Param        request body domain.SectionInput true "Section content"
// @Success      200  {object}  response.Response{data=domain.CVDocument}
// @Failure      400  {object}  response.Response
// @Failure      423  {object}  response.Response
// @Router       /jobseekers/me/cv/sections/{type} [put]
// @Security     BearerAuth
func (h *JobseekerHandler) WriteSection(c *gin.Context) {
	var input domain.SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	input.Type = c.Param("type")

	cv, err := h.jobseekerUC.WriteSection(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section saved", cv)
}

type WriteSectionsRequest struct {
	Sections []domain.SectionInput `json:"sections" binding:"required,min=1"`
}

// WriteSections godoc
// @Summary      Write several CV sections at once
// @Description  Saves all sections in one transaction with a single version bump
// @Tags         jobseekers
// @Accept       json
// @Produce      json
// @Param        request body WriteSectionsRequest true "Sections"
// @Success      200  {object}  response.Response{data=domain.CVDocument}
// @Failure      400  {object}  response.Response
// @Failure      423  {object}  response.Response
// @Router       /jobseekers/me/cv/sections [put]
// @Security     BearerAuth
func (h *JobseekerHandler) WriteSections(c *gin.Context) {
	var req WriteSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	cv, err := h.jobseekerUC.WriteSections(c.Request.Context(), req.Sections)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sections saved", cv)
}

// DeleteSection godoc
// @Summary      Delete a CV section
// @Tags         jobseekers
// @Produce      json
// @Param        type path string true "Section type"
// @Success      200  {object}  response.Response{data=domain.CVDocument}
// @Failure      404  {object}  response.Response
// @Failure      423  {object}  response.Response
// @Router       /jobseekers/me/cv/sections/{type} [delete]
// @Security     BearerAuth
func (h *JobseekerHandler) DeleteSection(c *gin.Context) {
	cv, err := h.jobseekerUC.DeleteSection(c.Request.Context(), c.Param("type"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section deleted", cv)
}
