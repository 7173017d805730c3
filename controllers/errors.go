package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/services"
	"github.com/yeremiapane/bar-pos/utils"
)

var errInternal = errors.New("internal server error")

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:        http.StatusBadRequest,
	services.KindNotFound:          http.StatusNotFound,
	services.KindInvalidState:      http.StatusConflict,
	services.KindInvalidTransition: http.StatusUnprocessableEntity,
	services.KindConflict:          http.StatusConflict,
}

// respondServiceError turns a service error into a response. Storage errors are
// logged and hidden behind a 500.
func respondServiceError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	code, ok := statusByKind[kind]
	if !ok {
		utils.ErrorLogger.WithField("path", c.Request.URL.Path).Errorf("request failed: %v", err)
		utils.RespondErrorKind(c, http.StatusInternalServerError, "internal", errInternal)
		return
	}
	utils.RespondErrorKind(c, code, string(kind), err)
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondErrorKind(c, http.StatusBadRequest, string(services.KindValidation), err)
}

// paramID reads a positive numeric path parameter. It answers 400 itself and
// returns false when the value is not usable.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondBindError(c, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
