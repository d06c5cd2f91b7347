package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLs_Basic(t *testing.T) {
	urls := URLs("Check out https://stake.us/bonus and http://example.com.")
	assert.Equal(t, []string{"https://stake.us/bonus", "http://example.com"}, urls)
}

func TestURLs_TrailingPunctuation(t *testing.T) {
	urls := URLs("go to https://casino.io/promo!?")
	assert.Equal(t, []string{"https://casino.io/promo"}, urls)
}

func TestURLs_None(t *testing.T) {
	assert.Empty(t, URLs("no links here"))
}

func TestURLs_OrderOfAppearance(t *testing.T) {
	urls := URLs("https://b.com then https://a.com then https://b.com")
	assert.Equal(t, []string{"https://b.com", "https://a.com", "https://b.com"}, urls)
}

func TestBonusCodeCandidates_Basic(t *testing.T) {
	codes := BonusCodeCandidates("Use code WELCOME2024 today")
	assert.Contains(t, codes, "WELCOME2024")
}

func TestBonusCodeCandidates_KeywordPrefix(t *testing.T) {
	codes := BonusCodeCandidates("promo: spin50x free")
	assert.Contains(t, codes, "SPIN50X")
}

func TestBonusCodeCandidates_Brackets(t *testing.T) {
	codes := BonusCodeCandidates("grab [BONUS456] while it lasts")
	assert.Contains(t, codes, "BONUS456")
}

func TestBonusCodeCandidates_Separators(t *testing.T) {
	codes := BonusCodeCandidates("codes SPIN_2024 and DROP-777 are live")
	assert.Contains(t, codes, "SPIN_2024")
	assert.Contains(t, codes, "DROP-777")
}

func TestBonusCodeCandidates_Denylist(t *testing.T) {
	codes := BonusCodeCandidates("HTTP HTTPS WWW 123456 COM https://x.io WWWW")
	for _, c := range codes {
		assert.NotEqual(t, "HTTP", c)
		assert.NotEqual(t, "HTTPS", c)
		assert.False(t, strings.HasPrefix(c, "WWW"), "got %q", c)
		assert.NotEqual(t, "123456", c)
		assert.NotEqual(t, "COM", c)
	}
}

func TestBonusCodeCandidates_LengthBounds(t *testing.T) {
	// Over-long all-caps runs are never extracted.
	codes := BonusCodeCandidates("ABC12 " + strings.Repeat("Z", 26))
	assert.Contains(t, codes, "ABC12")
	for _, c := range codes {
		assert.GreaterOrEqual(t, len(c), 4)
		assert.LessOrEqual(t, len(c), 25)
	}
}

func TestBonusCodeCandidates_RequiresLetter(t *testing.T) {
	for _, c := range BonusCodeCandidates("serial 4455-6677 and [998877]") {
		assert.True(t, strings.ContainsAny(c, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "got %q", c)
	}
}

func TestBonusCodeCandidates_SortedByLength(t *testing.T) {
	codes := BonusCodeCandidates("codes WELCOMEBONUS2024 and VIP50 and SPIN100 here")
	for i := 1; i < len(codes); i++ {
		assert.LessOrEqual(t, len(codes[i-1]), len(codes[i]))
	}
	assert.Contains(t, codes, "VIP50")
	assert.Contains(t, codes, "WELCOMEBONUS2024")
}

func TestBonusCodeCandidates_Deduplicates(t *testing.T) {
	codes := BonusCodeCandidates("VIP50 vip50 code VIP50")
	count := 0
	for _, c := range codes {
		if c == "VIP50" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBonusCodeCandidates_Deterministic(t *testing.T) {
	text := "Stake drop! Use code WELCOME2024 or [VIP50] at https://stake.us"
	first := BonusCodeCandidates(text)
	second := BonusCodeCandidates(text)
	assert.Equal(t, first, second)
}
