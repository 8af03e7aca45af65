package handlers

import (
	"net/http"

	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps the service error taxonomy onto status codes. Anything
// outside the taxonomy is a store/internal failure and is logged, not
// leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, utils.ErrorResponse(err.Error()))
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, utils.ErrorResponse(err.Error()))
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("internal server error"))
	}
}
