package utils

import "strings"

// SubstitutionCipher maps each letter of the alphabet to the corresponding
// letter of a 26-letter key. Characters outside a-z/A-Z pass through
// unchanged; case is preserved.
type SubstitutionCipher struct {
	encode [26]byte
	decode [26]byte
}

// NewSubstitutionCipher builds a cipher from a key containing each of the
// 26 letters exactly once. Returns false when the key is malformed.
func NewSubstitutionCipher(key string) (*SubstitutionCipher, bool) {
	key = strings.ToLower(key)
	if len(key) != 26 {
		return nil, false
	}

	var c SubstitutionCipher
	var seen [26]bool
	for i := 0; i < 26; i++ {
		ch := key[i]
		if ch < 'a' || ch > 'z' || seen[ch-'a'] {
			return nil, false
		}
		seen[ch-'a'] = true
		c.encode[i] = ch
		c.decode[ch-'a'] = byte('a' + i)
	}

	return &c, true
}

// Encode substitutes each letter of s with its key counterpart.
func (c *SubstitutionCipher) Encode(s string) string {
	return c.apply(s, &c.encode)
}

// Decode reverses Encode.
func (c *SubstitutionCipher) Decode(s string) string {
	return c.apply(s, &c.decode)
}

func (c *SubstitutionCipher) apply(s string, table *[26]byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(table[ch-'a'])
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(table[ch-'A'] - 'a' + 'A')
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
