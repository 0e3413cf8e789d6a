package utils

import (
	"math/rand"
	"time"
)

// Alphabet for class join codes; ambiguous characters (0/O, 1/I) are left out
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateClassCode generates a 6-character join code for a class
func GenerateClassCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) // Create a new random number generator
	code := make([]byte, 6)
	for i := range code {
		code[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(code)
}
