// Package newsletter normalises newsletter email bodies to plain text.
//
// Normalisation is an ordered sequence of best-effort textual rewrites:
// a fragment that matches no pattern passes through unchanged, and
// running the normaliser over its own output returns the text unchanged.
package newsletter

import (
	"html"
	"regexp"
	"strings"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultMarker is the heading that starts the trailing newsletter
// section dropped during normalisation.
const DefaultMarker = "Unsubscribe"

// Normaliser converts raw HTML or plain text email bodies into clean text.
type Normaliser struct {
	marker string
}

// New creates a normaliser with the default truncation marker.
func New() *Normaliser {
	return NewWithMarker(DefaultMarker)
}

// NewWithMarker creates a normaliser that truncates content from the
// given marker heading onward. An empty marker disables truncation.
func NewWithMarker(marker string) *Normaliser {
	return &Normaliser{marker: marker}
}

// Pre-compiled regular expressions for the cleanup passes.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	imgTags       = regexp.MustCompile(`(?i)<img[^>]*>`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	blockOpen     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	ruleLines     = regexp.MustCompile(`[-|]+\s*\n\s*[-|]+`)
	strayPipes    = regexp.MustCompile(`\|`)
	blankLines    = regexp.MustCompile(`\n[ \t]*\n`)
	hyphenLine    = regexp.MustCompile(`(?m)^\s*-+\s*$`)
	markdownLinks = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	invisibles    = strings.NewReplacer(
		"\u200b", "", // zero width space
		"\u200c", "", // zero width non-joiner
		"\u200d", "", // zero width joiner
		"\u2060", "", // word joiner
		"\ufeff", "", // byte order mark
	)
)

// Normalise produces trimmed plain text from a body in the given format.
func (n *Normaliser) Normalise(body string, format domain.BodyFormat) string {
	text := body
	if format == domain.FormatHTML {
		text = stripHTML(text)
	}

	// Collapse adjacent hyphen/pipe rule lines, then stray pipes.
	text = ruleLines.ReplaceAllString(text, "")
	text = strayPipes.ReplaceAllString(text, "")

	// Lines that are only hyphens carry no content.
	text = hyphenLine.ReplaceAllString(text, "")

	// Collapse runs of blank lines into single newlines. The pattern can
	// re-match across replacements, so iterate to a fixed point.
	for blankLines.MatchString(text) {
		text = blankLines.ReplaceAllString(text, "\n")
	}

	// Rewrite markdown-style [text](url) links to bare text.
	text = markdownLinks.ReplaceAllString(text, "$1")

	// Collapse repeated spaces and tabs, preserving newlines.
	text = multiSpaces.ReplaceAllString(text, " ")

	// Strip zero-width and other invisible characters.
	text = invisibles.Replace(text)

	// Drop the known trailing section from the marker heading onward.
	if n.marker != "" {
		if idx := strings.Index(text, n.marker); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}

// stripHTML removes markup and extracts readable text content.
// Link target text is preserved; images are dropped entirely.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = imgTags.ReplaceAllString(content, "")

	// Block boundaries become newlines so text keeps its shape.
	content = blockOpen.ReplaceAllString(content, "\n")
	content = blockClose.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// Trim each line; empty lines collapse later.
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
