package generation

import (
	"net/http"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Run triggers a generation pass outside the daily schedule.
func (h *Handler) Run(c *gin.Context) {
	summary, err := h.service.Run(c.Request.Context(), h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary, nil)
}
