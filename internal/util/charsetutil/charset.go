// Package charsetutil decodes request bodies according to their declared charset.
package charsetutil

import (
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const DefaultName = "utf-8"

// FromContentType returns the charset parameter of a Content-Type header, or "".
func FromContentType(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fall back to a manual scan; devices send headers mime rejects.
		for _, part := range strings.Split(contentType, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
			if ok && strings.EqualFold(strings.TrimSpace(k), "charset") {
				return strings.Trim(strings.TrimSpace(v), `"'`)
			}
		}
		return ""
	}
	return params["charset"]
}

// Lookup resolves a charset label. Unknown or empty labels resolve to UTF-8.
func Lookup(label string) (encoding.Encoding, string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return unicode.UTF8, DefaultName
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return unicode.UTF8, DefaultName
	}
	return enc, name
}

// DecodeToUTF8 converts body from the declared charset to UTF-8. It never fails:
// an unknown label or undecodable input yields the body unchanged.
func DecodeToUTF8(body []byte, label string) ([]byte, string) {
	enc, name := Lookup(label)
	if name == DefaultName || len(body) == 0 {
		return body, name
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body, DefaultName
	}
	return out, name
}
