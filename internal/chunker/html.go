// ABOUTME: HTML-to-text conversion for web article ingestion
// ABOUTME: Strips markup, script and style content, then normalizes whitespace
package chunker

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for HTML stripping.
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag  = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag      = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockClose   = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	brTags       = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
)

// StripHTML converts an HTML document to plain text suitable for chunking.
// Script, style, and head content is removed entirely; block boundaries
// become newlines; entities are decoded; whitespace is collapsed.
func StripHTML(raw string) string {
	text := raw
	text = htmlComments.ReplaceAllString(text, "")
	text = headTag.ReplaceAllString(text, "")
	text = scriptTag.ReplaceAllString(text, "")
	text = styleTag.ReplaceAllString(text, "")
	text = noscriptTag.ReplaceAllString(text, "")
	text = brTags.ReplaceAllString(text, "\n")
	text = blockClose.ReplaceAllString(text, "\n")
	text = allTags.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return normalizeWhitespace(text)
}

// normalizeWhitespace trims each line and joins non-empty fragments with
// single spaces, the same cleanup the web extraction applies before splitting
func normalizeWhitespace(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		for _, phrase := range strings.Fields(line) {
			parts = append(parts, phrase)
		}
	}
	return strings.Join(parts, " ")
}
