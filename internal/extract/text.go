package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// PromoType classifies what the extracted artifacts amount to: hybrid
// when both codes and URLs exist, code or url when only one does,
// info_only otherwise.
func PromoType(codes, urls []string) model.PromoType {
	hasCode := len(codes) > 0
	hasURL := len(urls) > 0
	switch {
	case hasCode && hasURL:
		return model.PromoTypeHybrid
	case hasCode:
		return model.PromoTypeCode
	case hasURL:
		return model.PromoTypeURL
	default:
		return model.PromoTypeInfoOnly
	}
}

// Headline synthesizes a review-ready headline from the text and the
// best casino/code guesses.
func Headline(text, casino, code string) string {
	if casino != "" && code != "" {
		return casino + " Bonus Code: " + code
	}
	if casino != "" {
		return casino + " Promo Available"
	}
	if code != "" {
		return "Bonus Code: " + code
	}

	first := strings.TrimSpace(firstSentence(text))
	if len(first) > 0 && len(first) <= 60 {
		return first
	}

	runes := []rune(text)
	if len(runes) > 60 {
		return strings.TrimSpace(string(runes[:60])) + "..."
	}
	return strings.TrimSpace(text)
}

// Description strips the headline out of the text and returns up to the
// first two sentences, capped at 200 characters.
func Description(text, headline string) string {
	desc := strings.TrimSpace(text)
	if headline != "" {
		desc = strings.TrimSpace(removeFold(desc, headline))
	}

	var sentences []string
	for _, s := range splitSentences(desc) {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) >= 2 {
		return truncate(sentences[0]+". "+sentences[1]+".", 200)
	}
	return strings.TrimSpace(truncate(desc, 200))
}

// firstSentence returns the text up to (not including) the first
// sentence-ending punctuation mark.
func firstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i]
	}
	return text
}

// splitSentences splits on sentence-ending punctuation, dropping empty
// fragments.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// removeFold removes every case-insensitive occurrence of sub from s.
// Matching walks s rune by rune so byte offsets stay valid even when
// case mapping changes a rune's encoded length.
func removeFold(s, sub string) string {
	if sub == "" {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if n := foldPrefixLen(s[i:], sub); n > 0 {
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldPrefixLen returns the byte length of the prefix of s that equals
// sub under simple case folding, or 0 when s does not start with sub.
func foldPrefixLen(s, sub string) int {
	i := 0
	for _, sr := range sub {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			return 0
		}
		if r != sr && unicode.ToLower(r) != unicode.ToLower(sr) {
			return 0
		}
		i += size
	}
	return i
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
