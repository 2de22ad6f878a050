package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schedula/services/scheduling"
	"schedula/utils"
)

// respondError translates engine errors to HTTP: validation → 400,
// missing records → 404, conflicts → 409, anything else → 500.
func respondError(c *gin.Context, err error) {
	var vErr scheduling.ValidationError
	if errors.As(err, &vErr) {
		utils.JSONErrorCode(c, http.StatusBadRequest, vErr.Code, vErr.Error())
		return
	}
	var nfErr scheduling.NotFoundError
	if errors.As(err, &nfErr) {
		utils.JSONErrorCode(c, http.StatusNotFound, nfErr.Code(), nfErr.Error())
		return
	}
	var cErr scheduling.ConflictError
	if errors.As(err, &cErr) {
		utils.JSONErrorCode(c, http.StatusConflict, "CONFLICT", cErr.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal server error", err.Error())
}
