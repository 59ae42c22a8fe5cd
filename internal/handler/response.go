package handler

import (
	"errors"
	"fmt"
	"net/http"

	"itemtracker/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// kindInternal is used for failures that are not an AppError.
const kindInternal = "internal"

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if ae, ok := usecase.AsAppError(err); ok {
		if ae.Kind == usecase.KindStorageUnavailable {
			c.Logger().Errorj(log.JSON{
				"request_id": requestID(c),
				"method":     c.Request().Method,
				"path":       c.Path(),
				"error":      ae.Error(),
			})
		}
		return c.JSON(ae.Status, ErrorResponse{Error: ae.Message, Kind: string(ae.Kind)})
	}

	// echo's own errors: unknown route, wrong method, bind failures
	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := string(usecase.KindValidation)
		switch {
		case he.Code == http.StatusNotFound:
			kind = string(usecase.KindNotFound)
		case he.Code >= http.StatusInternalServerError:
			kind = kindInternal
			c.Logger().Error(err)
		}
		return c.JSON(he.Code, ErrorResponse{Error: fmt.Sprint(he.Message), Kind: kind})
	}

	//500
	c.Logger().Errorj(log.JSON{"request_id": requestID(c), "error": err.Error()})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: kindInternal})
}

// HTTPErrorHandler renders errors that escape handlers in the same shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if werr := writeError(c, err); werr != nil {
		c.Logger().Error(werr)
	}
}

func validationError(c echo.Context, message string) error {
	return writeError(c, usecase.NewValidationError(message))
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
