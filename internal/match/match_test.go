package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		name  string
		value string
		query string
		want  bool
	}{
		{"ExactStart", "Rice 50kg", "Rice", true},
		{"CaseInsensitive", "Rice 50kg", "rIcE", true},
		{"ShortQuery", "Rice 50kg", "R", true},
		{"TwoCharQuery", "Rice 50kg", "Ri", true},
		{"MidWordNoMatch", "Rice 50kg", "50kg", false},
		{"EmptyQueryMatchesAll", "Rice 50kg", "", true},
		{"QueryLongerThanName", "Oil", "Oil 5L", false},
		{"NoMatch", "Beans", "Rice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prefix(tt.value, tt.query))
		})
	}
}

func TestSubstring(t *testing.T) {
	tests := []struct {
		name  string
		value string
		query string
		want  bool
	}{
		{"MidWord", "Rice 50kg", "50kg", true},
		{"CaseInsensitive", "Rice 50kg", "rice", true},
		{"AlsoMatchesPrefix", "Rice 50kg", "Rice", true},
		{"EmptyQueryMatchesAll", "Rice 50kg", "", true},
		{"NoMatch", "Rice 50kg", "beans", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substring(tt.value, tt.query))
		})
	}
}

func TestLikePatterns(t *testing.T) {
	assert.Equal(t, "rice%", PrefixPattern("Rice"))
	assert.Equal(t, "%rice%", SubstringPattern("Rice"))

	// LIKE wildcards in user text must match literally.
	assert.Equal(t, `50\%%`, PrefixPattern("50%"))
	assert.Equal(t, `%a\_b%`, SubstringPattern("a_b"))
	assert.Equal(t, `%a\\b%`, SubstringPattern(`a\b`))

	// Empty query degrades to match-everything, mirroring the predicates.
	assert.Equal(t, "%", PrefixPattern(""))
	assert.Equal(t, "%%", SubstringPattern(""))
}
