// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/i18n"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

// serviceError maps service sentinels onto the response envelope.
// resource feeds the not-found message key.
func serviceError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrCartEmpty):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
	case errors.Is(err, services.ErrInvalidStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), nil)
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), nil)
	case errors.Is(err, services.ErrAlreadyExists):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), "already exists")
	case errors.Is(err, services.ErrInvalidSession):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidSession))
	case errors.Is(err, services.ErrUpstream):
		utils.UpstreamErrorResponse(c, i18n.T(lang, i18n.KeyAuthServiceError))
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// bindAndValidate decodes the JSON body and runs struct validation,
// writing the error response itself on failure.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}
