package validation

import "regexp"

// tokenCodePattern matches redemption codes like TFX-A1B2C3-D4E5F6.
// Case-insensitive: codes are normalized to upper case before lookup.
var tokenCodePattern = regexp.MustCompile(`(?i)^TFX-[A-Z0-9]{6}-[A-Z0-9]{6}$`)

// IsTokenCode reports whether s looks like a redemption code. Redemption
// never rejects input at the binding layer: a malformed code is just a
// code that does not exist.
func IsTokenCode(s string) bool {
	return tokenCodePattern.MatchString(s)
}
