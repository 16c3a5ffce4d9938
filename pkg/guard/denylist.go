// Package guard implements the denylist gate applied before any model call.
//
// This is a usability guard against obvious prompt-injection phrasing, NOT a
// security boundary: substring matching is trivially bypassed by paraphrase.
package guard

import "strings"

// Denylist rejects queries containing any of its terms (case-insensitive).
type Denylist struct {
	terms []string
}

func NewDenylist(terms []string) *Denylist {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Denylist{terms: lowered}
}

// Blocked reports whether the query contains a denylisted substring.
func (d *Denylist) Blocked(query string) bool {
	q := strings.ToLower(query)
	for _, t := range d.terms {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// Terms returns a copy of the active denylist.
func (d *Denylist) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}
