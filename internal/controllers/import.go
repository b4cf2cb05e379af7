package controllers

import (
	"net/http"

	"backoffice-system/internal/services"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ImportController struct {
	importService services.BulkImportServiceInterface
	logger        *zap.Logger
}

func NewImportController(importService services.BulkImportServiceInterface, logger *zap.Logger) *ImportController {
	return &ImportController{importService: importService, logger: logger}
}

// ImportSheet accepts a multipart upload under the "file" field and creates
// one pending batch from it.
func (c *ImportController) ImportSheet(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("entity")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "multipart field 'file' is required", err, nil),
			c.logger,
		)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "cannot open uploaded file", err,
				map[string]interface{}{"filename": fileHeader.Filename}),
			c.logger,
		)
	}
	defer file.Close()

	result, err := c.importService.ImportSheet(reqCtx, slug, file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, "Spreadsheet imported", http.StatusCreated)
}
