package validation

import (
	"net/url"
	"regexp"
	"slices"

	"detention/internal/constants"
	"detention/internal/errors"
)

// Request types navi sends when it cannot route to an instance
const (
	TypeNotRunning   = "not_running"
	TypePorts        = "ports"
	TypeSignin       = "signin"
	TypeUnresponsive = "unresponsive"
)

// RequestTypes lists every accepted value of the type query parameter
var RequestTypes = []string{TypeNotRunning, TypePorts, TypeSignin, TypeUnresponsive}

// shortHashRegex matches the opaque identifiers the API hands out
var shortHashRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// NaviRequest validates the type and shortHash query parameters. Every type
// except signin needs a shortHash, and that check runs before the type check.
// signin never looks the instance up, so its shortHash is not checked.
func NaviRequest(requestType, shortHash string) error {
	if requestType != TypeSignin && shortHash == "" {
		return errors.MissingShortHash()
	}

	if !slices.Contains(RequestTypes, requestType) {
		return errors.InvalidRequestType(requestType)
	}

	if requestType != TypeSignin {
		if len(shortHash) > constants.MaxShortHashLength || !shortHashRegex.MatchString(shortHash) {
			return errors.ValidationFailed("shortHash", "must be alphanumeric")
		}
	}

	return nil
}

// SafeURL returns raw when it is an absolute http(s) URL and "" otherwise, so
// attacker-supplied links never carry other schemes into a page.
func SafeURL(raw string) string {
	if raw == "" || len(raw) > constants.MaxURLLength {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// Truncate bounds a free-form query value before it reaches a page
func Truncate(value string) string {
	runes := []rune(value)
	if len(runes) > constants.MaxQueryValueLength {
		return string(runes[:constants.MaxQueryValueLength])
	}
	return value
}
