package handler

import (
	"errors"

	"prizehouse-api/internal/service"
	"prizehouse-api/pkg/apierror"
)

// domainError maps service-layer rejections onto API errors. Business
// rules surface as conflicts, lookup misses as 404s, validation as 400s
// with field details. Anything unrecognized is a 500.
func domainError(err error) *apierror.Error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		details := make([]apierror.FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, apierror.FieldError{Field: f, Message: "missing or invalid"})
		}
		return apierror.ValidationError("validation failed", details...)
	}

	switch {
	case errors.Is(err, service.ErrInsufficientPoints):
		return apierror.Conflict("INSUFFICIENT_POINTS", "Not enough points for this prize")
	case errors.Is(err, service.ErrOutOfStock):
		return apierror.Conflict("OUT_OF_STOCK", "Prize is sold out")
	case errors.Is(err, service.ErrNoActiveSession):
		return apierror.Unauthorized("No active student session")
	case errors.Is(err, service.ErrStudentNotFound):
		return apierror.NotFound("Student not found")
	case errors.Is(err, service.ErrPrizeNotFound):
		return apierror.NotFound("Prize not found")
	default:
		return apierror.InternalError("")
	}
}
