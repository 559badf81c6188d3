package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coursecatalog/catalog/authenticator"
	"github.com/coursecatalog/catalog/services"
)

// Error kinds reported to the browser
const (
	errKindUnknownProvider = "UnknownProvider"
	errKindInvalidState    = "InvalidState"
	errKindConfiguration   = "Configuration"
	errKindUpstream        = "UpstreamIdentity"
	errKindLinking         = "AccountLinkingConflict"
	errKindAccessDenied    = "AccessDenied"
	errKindMissingCSRF     = "MissingCSRF"
	errKindDefault         = "Default"
)

var errorKindStatus = map[string]int{
	errKindUnknownProvider: http.StatusNotFound,
	errKindInvalidState:    http.StatusBadRequest,
	errKindConfiguration:   http.StatusInternalServerError,
	errKindUpstream:        http.StatusBadGateway,
	errKindLinking:         http.StatusConflict,
	errKindAccessDenied:    http.StatusUnauthorized,
	errKindMissingCSRF:     http.StatusForbidden,
	errKindDefault:         http.StatusInternalServerError,
}

var errorKindMessage = map[string]string{
	errKindUnknownProvider: "Unknown sign-in provider",
	errKindInvalidState:    "Sign-in state is missing or invalid, please sign in again",
	errKindConfiguration:   "Sign-in is misconfigured",
	errKindUpstream:        "The identity provider could not complete the sign-in, please try again",
	errKindLinking:         "This email is already used by an account from another provider",
	errKindAccessDenied:    "Sign-in was denied by the identity provider",
	errKindMissingCSRF:     "The request is missing a valid CSRF token",
	errKindDefault:         "Sign-in failed",
}

// classifyError maps a flow error onto the response status and error kind
func classifyError(err error) (int, string) {
	var providerErr *providerError

	kind := errKindDefault
	switch {
	case errors.Is(err, authenticator.ErrUnknownProvider):
		kind = errKindUnknownProvider
	case errors.Is(err, errInvalidState):
		kind = errKindInvalidState
	case errors.Is(err, errMissingCSRF):
		kind = errKindMissingCSRF
	case authenticator.IsAuthConfigurationError(err):
		kind = errKindConfiguration
	case authenticator.IsUpstreamIdentityError(err):
		kind = errKindUpstream
	case errors.Is(err, services.ErrAccountLinkingConflict):
		kind = errKindLinking
	case errors.As(err, &providerErr):
		kind = errKindAccessDenied
	}
	return errorKindStatus[kind], kind
}

type authErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeAuthError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, authErrorResponse{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
