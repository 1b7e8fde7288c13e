// Package validation gates what text may be encoded.
package validation

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/domain"
)

// Validate checks text before it is handed to the generator.
// Empty text, malformed http(s) links and text longer than
// domain.MaxTextLength characters fail with domain.ErrValidation.
func Validate(text string) error {
	if text == "" {
		return goerr.Wrap(domain.ErrValidation, "please enter some text or a URL")
	}

	if hasHTTPPrefix(text) && !isWellFormedAbsoluteURI(text) {
		return goerr.Wrap(domain.ErrValidation, "malformed link", goerr.V("text", text))
	}

	if n := utf8.RuneCountInString(text); n > domain.MaxTextLength {
		return goerr.Wrap(domain.ErrValidation, "text is too long for a QR code",
			goerr.V("length", n), goerr.V("max", domain.MaxTextLength))
	}

	return nil
}

// uriExcludedChars may not appear unescaped anywhere in a URI.
const uriExcludedChars = "\"<>{}|\\^`"

func hasHTTPPrefix(text string) bool {
	return len(text) >= 4 && strings.EqualFold(text[:4], "http")
}

func isWellFormedAbsoluteURI(text string) bool {
	if strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return false
	}
	if strings.ContainsAny(text, uriExcludedChars) {
		return false
	}
	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != "" && u.Hostname() != ""
}
