package generator

import "math/rand/v2"

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultLength is the code length used when none is configured.
// 62^4 gives ~14.7 million distinct codes.
const DefaultLength = 4

// Generator produces fixed-length candidate codes drawn uniformly from
// the base62 alphabet. It knows nothing about codes already issued;
// collision checking belongs to the store.
type Generator struct {
	length int
}

// New creates a generator with the given code length (DefaultLength if <= 0)
func New(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Length returns the length of generated codes
func (g *Generator) Length() int {
	return g.length
}

// NewCode returns a fresh candidate code. Not a security boundary, so a
// plain PRNG is sufficient.
func (g *Generator) NewCode() string {
	b := make([]byte, g.length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Valid reports whether every character of code belongs to the alphabet
// and the length matches. Used to short-circuit lookups for codes that
// could never have been issued.
func (g *Generator) Valid(code string) bool {
	if len(code) != g.length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
