package publish

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSlugLength caps derived slugs
	MaxSlugLength = 200

	// ExcerptLength is the number of characters kept as article excerpt
	ExcerptLength = 200
)

// elements whose text is never shown to readers
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Iframe:   true,
	atom.Object:   true,
}

// elements that start a new line of text when rendered
var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

/* PlainText reduces markup to its visible text.
 * Block elements become word breaks, inline elements join their text as written
 * and whitespace is collapsed. Entities are decoded, so the result is not safe to render as HTML.
 */
func PlainText(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	pendingSpace := false
	depth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer error, either way the text so far is all there is
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			// <script/> still opens a raw text element for the tokenizer
			if skipped[a] {
				if tt != html.EndTagToken {
					depth++
				} else if depth > 0 {
					depth--
				}
			}
			if blocks[a] {
				pendingSpace = true
			}
		case html.TextToken:
			if depth > 0 {
				continue
			}
			for _, r := range string(z.Text()) {
				if unicode.IsSpace(r) {
					pendingSpace = true
					continue
				}
				if pendingSpace && b.Len() > 0 {
					b.WriteByte(' ')
				}
				pendingSpace = false
				b.WriteRune(r)
			}
		}
	}
}

// StripHTML returns the visible text of s escaped again, so text that spelled out markup stays inert
func StripHTML(s string) string {
	return html.EscapeString(PlainText(s))
}

// Excerpt returns at most n characters of text, cut at the last word boundary when possible
func Excerpt(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	cut := string(r[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}

var removeMarks = runes.Remove(runes.In(unicode.Mn))

/* Slugify lowercases s, folds accents to ASCII and replaces every run of
 * other characters with a single hyphen. The result never starts or ends with a hyphen.
 */
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, removeMarks, norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}
