package profilesdk

import "regexp"

// emailPattern is the WHATWG "valid e-mail address" production used by
// <input type="email">.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// ValidEmail reports whether s passes the HTML5 email check. The empty string
// is valid: the field is optional.
func ValidEmail(s string) bool {
	return s == "" || emailPattern.MatchString(s)
}
