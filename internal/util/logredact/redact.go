// Package logredact masks secrets in text that is about to be logged or
// returned inside an error message.
package logredact

import "regexp"

const mask = "***"

var (
	jsonSecretRe    = regexp.MustCompile(`"(access_token|refresh_token|id_token|client_secret|password)"\s*:\s*"[^"]*"`)
	querySecretRe   = regexp.MustCompile(`\b(access_token|refresh_token|id_token|client_secret|password|code)=[^&\s"']+`)
	bearerRe        = regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9._~+/=-]+`)
	xmlCredentialRe = regexp.MustCompile(`(<credential\b[^>]*>)[^<]*(</credential>)`)
)

// RedactText replaces token values in JSON bodies, form/query strings,
// bearer headers and vendor <credential> elements.
func RedactText(s string) string {
	if s == "" {
		return s
	}
	s = jsonSecretRe.ReplaceAllString(s, `"$1":"`+mask+`"`)
	s = querySecretRe.ReplaceAllString(s, `$1=`+mask)
	s = bearerRe.ReplaceAllString(s, `$1 `+mask)
	s = xmlCredentialRe.ReplaceAllString(s, `${1}`+mask+`${2}`)
	return s
}
