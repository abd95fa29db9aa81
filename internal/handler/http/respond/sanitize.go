package respond

import (
	"regexp"
)

var (
	// api_key query parameter, as it appears in upstream request URLs
	apiKeyParamPattern = regexp.MustCompile(`(api_key=)[^&\s"]+`)

	// password inside a URL-style DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// password in a key/value DSN: "host=db user=app password=secret"
	kvPasswordPattern = regexp.MustCompile(`(password=)[^\s&]+`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
