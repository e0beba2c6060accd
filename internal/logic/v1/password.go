package v1

import "regexp"

// passwordRules are evaluated in order; the first failing rule's message
// is returned. Matches the policy enforced by the remote API so users see
// rejections before the network round trip.
var passwordRules = []struct {
	re  *regexp.Regexp
	msg string
}{
	{regexp.MustCompile(`.{8,}`), "Password must be at least 8 characters long"},
	{regexp.MustCompile(`[A-Z]`), "Password must contain at least one uppercase letter"},
	{regexp.MustCompile(`[a-z]`), "Password must contain at least one lowercase letter"},
	{regexp.MustCompile(`\d`), "Password must contain at least one number"},
	{regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`), "Password must contain at least one special character"},
}

// ValidatePassword checks pw against the password policy. It returns an
// empty string when the password is acceptable, otherwise the message for
// the first rule violated.
func ValidatePassword(pw string) string {
	if pw == "" {
		return "Password is required"
	}
	for _, rule := range passwordRules {
		if !rule.re.MatchString(pw) {
			return rule.msg
		}
	}
	return ""
}
