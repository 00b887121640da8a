package v1

import (
	"net/http"
	"strconv"

	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	snapshotUC domain.SnapshotUsecase
}

func NewSnapshotHandler(r *gin.RouterGroup, snapshotUC domain.SnapshotUsecase) {
	handler := &SnapshotHandler{snapshotUC: snapshotUC}

	snapshots := r.Group("/snapshots")
	{
		snapshots.POST("", handler.Save)
		snapshots.GET("", handler.List)
		snapshots.GET("/:id", handler.Get)
		snapshots.DELETE("/:id", handler.Delete)
	}
}

type SaveSnapshotRequest struct {
	CVID int64 `json:"cv_id" binding:"required"`
}

// Save godoc
// @Summary      Save a CV snapshot
// @Description  Copies the CV at its current version into the employer's saved list. One snapshot per CV version.
// @Tags         snapshots
// @Accept       json
// @Produce      json
// @Param        request body SaveSnapshotRequest true "CV to save"
// @Success      201  {object}  response.Response{data=domain.EmployerSavedSnapshot}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /snapshots [post]
// @Security     BearerAuth
func (h *SnapshotHandler) Save(c *gin.Context) {
	var req SaveSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Field cv_id is required", nil)
		return
	}

	snapshot, err := h.snapshotUC.Save(c.Request.Context(), req.CVID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Snapshot saved", snapshot)
}

// List godoc
// @Summary      List my snapshots
// @Description  The employer's saved snapshots, newest first
// @Tags         snapshots
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.EmployerSavedSnapshot}
// @Router       /snapshots [get]
// @Security     BearerAuth
func (h *SnapshotHandler) List(c *gin.Context) {
	snapshots, err := h.snapshotUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Snapshots fetched successfully", snapshots)
}

// Get godoc
// @Summary      Get one snapshot
// @Tags         snapshots
// @Produce      json
// @Param        id path int true "Snapshot ID"
// @Success      200  {object}  response.Response{data=domain.EmployerSavedSnapshot}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /snapshots/{id} [get]
// @Security     BearerAuth
func (h *SnapshotHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	snapshot, err := h.snapshotUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Snapshot fetched successfully", snapshot)
}

// Delete godoc
// @Summary      Delete a snapshot
// @Description  Removes the snapshot from the saved list. The jobseeker's live CV is untouched.
// @Tags         snapshots
// @Produce      json
// @Param        id path int true "Snapshot ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /snapshots/{id} [delete]
// @Security     BearerAuth
func (h *SnapshotHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID", nil)
		return
	}

	if err := h.snapshotUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Snapshot deleted", nil)
}
