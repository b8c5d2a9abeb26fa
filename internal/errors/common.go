package errors

import "fmt"

// Configuration Errors
func ConfigNotFound(path string) *DetentionError {
	return NewWithDetails(ErrConfigNotFound, "Configuration file not found", fmt.Sprintf("Path: %s", path))
}

func ConfigInvalid(reason string) *DetentionError {
	return NewWithDetails(ErrConfigInvalid, "Invalid configuration", reason)
}

func ConfigParseError(path string, cause error) *DetentionError {
	return WrapWithDetails(ErrConfigParse, "Failed to parse configuration",
		fmt.Sprintf("Path: %s", path), cause)
}

// Request Errors
func MissingShortHash() *DetentionError {
	return New(ErrMissingShortHash, "instance shortHash required")
}

func InvalidRequestType(requestType string) *DetentionError {
	return New(ErrInvalidRequestType, "invalid request type").WithContext("type", requestType)
}

func ValidationFailed(field, reason string) *DetentionError {
	return NewWithDetails(ErrValidationFailed, "Validation failed",
		fmt.Sprintf("Field: %s, Reason: %s", field, reason))
}

func RouteNotFound(path string) *DetentionError {
	return NewWithDetails(ErrRouteNotFound, "Not Found", fmt.Sprintf("Path: %s", path))
}

// Instance Errors
func InstanceNotFound(shortHash string, cause error) *DetentionError {
	return WrapWithDetails(ErrInstanceNotFound, "instance not found",
		fmt.Sprintf("ShortHash: %s", shortHash), cause)
}

// Network/API Errors
func APICallError(method, url string, cause error) *DetentionError {
	return WrapWithDetails(ErrAPICall, "API call failed",
		fmt.Sprintf("Method: %s, URL: %s", method, url), cause)
}

func AuthenticationFailed(reason string) *DetentionError {
	return NewWithDetails(ErrAuthFailed, "Authentication failed", reason)
}

// Rendering Errors
func RenderFailed(page string, cause error) *DetentionError {
	return WrapWithDetails(ErrRenderFailed, "Failed to render page",
		fmt.Sprintf("Page: %s", page), cause)
}
