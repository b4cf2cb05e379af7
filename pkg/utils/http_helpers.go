package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
}

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				l = MaxLimit
			}
			filterReq.Limit = l
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	if values.Get("withPagination") == "false" {
		filterReq.WithPagination = false
	} else {
		filterReq.WithPagination = true
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]

			if existing, ok := filterReq.Filter[field]; ok {
				filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, vals[0])
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int(total[0]) / filter.Limit
			if int(total[0])%filter.Limit > 0 {
				totalPages++
			}
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        filter.Page,
			"limit":       filter.Limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var alreadyProcessed *apperrors.AlreadyProcessedError
	if errors.As(err, &alreadyProcessed) {
		// Stale-queue conflict: the record was handled by another session.
		// Distinguished code so callers can reconcile instead of alerting.
		return c.JSON(http.StatusConflict, &HTTPResponse{
			Status:  false,
			Message: alreadyProcessed.Error(),
			Code:    "ALREADY_APPROVED",
		})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: invalidInput.Message})
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := &HTTPResponse{Status: false, Message: httpErr.Message}
		if httpErr.Details != nil {
			response.Body = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		// Fail-fast policy: only the first violation is surfaced.
		e := validationErrors[0]
		msg := fmt.Sprintf("field '%s' failed validation rule '%s'", e.Field(), e.Tag())
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: msg})
	}

	if code, ok := sentinelStatus(err); ok {
		return c.JSON(code, &HTTPResponse{Status: false, Message: err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Status:  false,
		Message: "internal server error",
	})
}

func sentinelStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrUserIDNotFoundInContext),
		errors.Is(err, apperrors.ErrRoleIDNotFoundInContext):
		return http.StatusUnauthorized, true
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, true
	}
	return 0, false
}
