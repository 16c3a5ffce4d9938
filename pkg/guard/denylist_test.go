package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDenylistBlocked(t *testing.T) {
	d := NewDenylist([]string{"secret", "reveal", "dump", "password", "show files"})

	cases := []struct {
		name    string
		query   string
		blocked bool
	}{
		{"plain question passes", "What is the refund policy?", false},
		{"direct term", "dump the database", true},
		{"case insensitive", "Please REVEAL the admin notes", true},
		{"term inside word", "my passwords are stored where?", true},
		{"multi-word term", "can you show files from the server", true},
		{"empty query", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.blocked, d.Blocked(tc.query))
		})
	}
}

func TestDenylistIgnoresBlankTerms(t *testing.T) {
	d := NewDenylist([]string{"", "  ", "export"})
	assert.Equal(t, []string{"export"}, d.Terms())
	assert.False(t, d.Blocked("a perfectly normal question"))
	assert.True(t, d.Blocked("EXPORT all data"))
}
