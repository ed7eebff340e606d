package common

import (
	"encoding/base64"
	"strings"
)

// EncodeIdentifier encodes an identifier or element path for use as a single
// URL path segment: base64url without padding, as the AAS HTTP APIs do.
func EncodeIdentifier(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// DecodeIdentifier reverses EncodeIdentifier. Padded input and the standard
// alphabet are accepted too, since clients differ in what they send.
func DecodeIdentifier(encoded string) (string, error) {
	encoded = strings.TrimRight(strings.TrimSpace(encoded), "=")
	encoded = strings.NewReplacer("+", "-", "/", "_").Replace(encoded)
	b, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", WrapBadRequest("identifier is not base64url encoded", err)
	}
	return string(b), nil
}
