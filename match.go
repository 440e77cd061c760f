package bfe

import "strings"

// Match is the result of matching a string against the registry.
// Type is nil when no sigil matched.
type Match struct {
	Type    *Type
	Format  *Format
	Payload string // text between sigil and suffix
}

// Match finds the first type, in registry order, whose sigil prefixes s,
// then the first of its formats whose suffix ends the remainder.
//
// Types without a sigil never match. If no sigil matches, Match returns a
// zero Match and a nil error. If a sigil matches but no format does, it
// returns ErrUnknownFormat; later types sharing the sigil are not tried.
func (r *Registry) Match(s string) (Match, error) {
	for _, t := range r.types {
		if t.sigil == "" || !strings.HasPrefix(s, t.sigil) {
			continue
		}
		rest := s[len(t.sigil):]
		for _, f := range t.formats {
			if strings.HasSuffix(rest, f.suffix) {
				return Match{
					Type:    t,
					Format:  f,
					Payload: rest[:len(rest)-len(f.suffix)],
				}, nil
			}
		}
		return Match{}, newMatchError(ErrUnknownFormat, s, t.name, nil)
	}
	return Match{}, nil
}
