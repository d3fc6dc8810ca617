// Package textclean normalizes post and bio text before it goes into a prompt.
package textclean

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	shortLinkPattern  = regexp.MustCompile(`https://t\.co/\w+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips t.co short links, emoji and non-printable characters,
// collapses whitespace runs into single spaces and trims the result.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = shortLinkPattern.ReplaceAllString(text, "")
	text = strings.ToValidUTF8(text, "")
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if !unicode.IsPrint(r) || isEmoji(r) {
			return -1
		}
		return r
	}, text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, transport, flags
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
		return true
	}
	return false
}
