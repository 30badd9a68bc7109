package services

import (
	"regexp"
	"strings"
	"unicode"
)

// NormalizerService produces the canonical text representation every
// downstream stage (skill matching, similarity, scoring) works on.
type NormalizerService interface {
	Normalize(text string) string
}

type normalizerService struct{}

func NewNormalizerService() NormalizerService {
	return &normalizerService{}
}

var (
	emailPattern = regexp.MustCompile(`[\w.\-]+@[\w.\-]+`)
	urlPattern   = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Normalize lowercases the text and strips everything outside a small
// alphabet of letters, digits and the symbol characters skills depend on
// (+, #, .). Email- and URL-shaped tokens are removed entirely so contact
// headers do not pollute similarity scores. The function is total and
// idempotent: normalizing already-normalized text is a no-op.
func (n *normalizerService) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Split words glued together by lossy extraction ("JavaDeveloper")
	// before case information is destroyed. Heuristic, known imperfect.
	text = splitCamelBoundaries(text)
	text = strings.ToLower(text)

	text = emailPattern.ReplaceAllString(text, " ")
	text = urlPattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '|' || r == '/' || r == '•' || r == '●' || r == '▪':
			b.WriteRune(' ')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '+', r == '#', r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// Dropped. Anything else is noise for keyword matching.
		}
	}

	// The character filter can splice a URL back together by deleting a
	// separator inside it ("www,.site.com" becomes "www.site.com"), so the
	// URL strip runs once more over the filtered text.
	out := urlPattern.ReplaceAllString(b.String(), " ")

	return strings.TrimSpace(spacePattern.ReplaceAllString(out, " "))
}

func splitCamelBoundaries(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	prev := rune(0)
	for _, r := range text {
		if unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
