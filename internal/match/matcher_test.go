package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamblecodez/drops-cli/internal/model"
)

var registry = []model.Casino{
	{ID: "c1", Name: "Stake", ResolvedDomain: "stake.us"},
	{ID: "c2", Name: "Roobet", ResolvedDomain: "roobet.com"},
	{ID: "c3", Name: "Lucky Bird Casino", ResolvedDomain: "luckybird.io"},
}

func TestCasino_ExactDomain(t *testing.T) {
	got := Casino("stake.us", "", registry)
	require.NotNil(t, got)
	assert.Equal(t, "Stake", got.Name)
}

func TestCasino_DomainNormalization(t *testing.T) {
	got := Casino("https://www.roobet.com/promo", "", registry)
	require.NotNil(t, got)
	assert.Equal(t, "Roobet", got.Name)
}

func TestCasino_SiblingTLD(t *testing.T) {
	// stake.com should match the registry entry for stake.us.
	got := Casino("stake.com", "", registry)
	require.NotNil(t, got)
	assert.Equal(t, "Stake", got.Name)
}

func TestCasino_SubdomainContainment(t *testing.T) {
	got := Casino("promo.roobet.com", "", registry)
	require.NotNil(t, got)
	assert.Equal(t, "Roobet", got.Name)
}

func TestCasino_NameInText(t *testing.T) {
	got := Casino("", "Huge drop over at Roobet today", registry)
	require.NotNil(t, got)
	assert.Equal(t, "Roobet", got.Name)
}

func TestCasino_FuzzyWordMatch(t *testing.T) {
	// "Lucky" is a >=3 char word of the registry name appearing in text.
	got := Casino("", "lucky spins all weekend", registry)
	require.NotNil(t, got)
	assert.Equal(t, "Lucky Bird Casino", got.Name)
}

func TestCasino_NoMatch(t *testing.T) {
	assert.Nil(t, Casino("unknown.xyz", "nothing relevant here", registry))
	assert.Nil(t, Casino("", "", registry))
}

func TestCasino_FirstRegistryEntryWins(t *testing.T) {
	dupes := []model.Casino{
		{ID: "a", Name: "Stake", ResolvedDomain: "stake.us"},
		{ID: "b", Name: "Stake Mirror", ResolvedDomain: "stake.us"},
	}
	got := Casino("stake.us", "", dupes)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

func TestCasino_DiacriticFolding(t *testing.T) {
	reg := []model.Casino{{ID: "c9", Name: "Café Casino", ResolvedDomain: "cafecasino.lv"}}
	got := Casino("", "new cafe casino reload bonus", reg)
	require.NotNil(t, got)
	assert.Equal(t, "c9", got.ID)
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://www.Stake.us/bonus?x=1", "stake.us"},
		{"http://roobet.com", "roobet.com"},
		{"WWW.LUCKYBIRD.IO", "luckybird.io"},
		{"stake.us:443", "stake.us"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDomain(tt.in))
	}
}
