package shared

import (
	"errors"
	"net/http"

	"civreg/internal/transport/http/json"
	dErrors "civreg/pkg/domain-errors"
)

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and error responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		json.WriteJSON(w, status, response)
		return
	}

	// Fallback for unexpected errors
	json.WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput,
		dErrors.CodeInvalidDestination, dErrors.CodeEmptyDocumentReference:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeRegionAlreadyBound, dErrors.CodeIdentityAlreadyBound,
		dErrors.CodeNationalIDAlreadyClaimed, dErrors.CodeIdentityAlreadyRegistered,
		dErrors.CodeWrongStatus:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotOwner, dErrors.CodeNotRegisteredCitizen:
		return http.StatusForbidden
	case dErrors.CodeDocumentNotIssued:
		return http.StatusNotFound
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
