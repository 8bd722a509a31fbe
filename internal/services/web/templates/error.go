package templates

import "net/http"

const (
	errorNotFoundKey    = "core.error.not_found"
	errorUnavailableKey = "core.error.unavailable"
	errorInternalKey    = "core.error.internal"
	errorRetryKey       = "core.error.retry"
	errorTitleKey       = "core.error.title"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, errorTitleKey, errorHeading(statusCode, loc))
}

func errorHeading(statusCode int, loc Localizer) string {
	switch normalizeErrorStatus(statusCode) {
	case http.StatusNotFound:
		return T(loc, errorNotFoundKey)
	case http.StatusServiceUnavailable:
		return T(loc, errorUnavailableKey)
	default:
		return T(loc, errorInternalKey)
	}
}

func errorDetail(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return ""
	}
	return T(loc, errorRetryKey)
}

func normalizeErrorStatus(statusCode int) int {
	switch statusCode {
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return statusCode
	default:
		return http.StatusInternalServerError
	}
}
