package v1

import (
	"net/http"
	"strconv"

	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := r.Group("/interviews")
	{
		interviews.POST("", handler.Create)
		interviews.GET("", handler.ListMine)
		interviews.GET("/:id", handler.Get)
		interviews.POST("/:id/respond", handler.Respond)
		interviews.POST("/:id/cancel", handler.Cancel)
		interviews.POST("/:id/complete", handler.MarkCompleted)
		interviews.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Request an interview
// @Description  Verified employers only. One in-flight request per jobseeker at a time.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        request body domain.InterviewDetails true "Interview details"
// @Success      201  {object}  response.Response{data=domain.InterviewRequest}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Create(c *gin.Context) {
	var details domain.InterviewDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	request, err := h.interviewUC.Create(c.Request.Context(), details)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview request created", request)
}

// ListMine godoc
// @Summary      List my interview requests
// @Description  Requests the caller participates in, from their side of the negotiation
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.InterviewView}
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListMine(c *gin.Context) {
	views, err := h.interviewUC.ListMine(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview requests fetched successfully", views)
}

// Get godoc
// @Summary      Get one interview request
// @Tags         interviews
// @Produce      json
// @Param        id path int true "Interview request ID"
// @Success      200  {object}  response.Response{data=domain.InterviewView}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	view, err := h.interviewUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview request fetched successfully", view)
}

type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept decline"`
	Message  string `json:"message" binding:"max=2000"`
}

// Respond godoc
// @Summary      Accept or decline an interview request
// @Description  Jobseekers only. Accepting discloses your phone number to the employer.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id path int true "Interview request ID"
// @Param        request body RespondRequest true "Decision"
// @Success      200  {object}  response.Response{data=domain.InterviewRequest}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews/{id}/respond [post]
// @Security     BearerAuth
func (h *InterviewHandler) Respond(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Decision must be accept or decline", nil)
		return
	}

	request, err := h.interviewUC.Respond(c.Request.Context(), id, req.Decision, req.Message)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Response recorded", request)
}

// Cancel godoc
// @Summary      Cancel a pending interview request
// @Description  Originating employer only, while the request is still pending
// @Tags         interviews
// @Produce      json
// @Param        id path int true "Interview request ID"
// @Success      200  {object}  response.Response{data=domain.InterviewRequest}
// @Failure      409  {object}  response.Response
// @Router       /interviews/{id}/cancel [post]
// @Security     BearerAuth
func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	request, err := h.interviewUC.Cancel(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview request cancelled", request)
}

// MarkCompleted godoc
// @Summary      Mark an accepted interview as completed
// @Description  Either participant may mark completion
// @Tags         interviews
// @Produce      json
// @Param        id path int true "Interview request ID"
// @Success      200  {object}  response.Response{data=domain.InterviewRequest}
// @Failure      409  {object}  response.Response
// @Router       /interviews/{id}/complete [post]
// @Security     BearerAuth
func (h *InterviewHandler) MarkCompleted(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	request, err := h.interviewUC.MarkCompleted(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview marked completed", request)
}

// Delete godoc
// @Summary      Delete a concluded interview request
// @Description  Originating employer only; the request must be declined, cancelled or completed
// @Tags         interviews
// @Produce      json
// @Param        id path int true "Interview request ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	if err := h.interviewUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview request deleted", nil)
}
