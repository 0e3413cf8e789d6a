package utils

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateClassCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateClassCode()
		assert.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q", ch)
		}
		seen[code] = true
	}
	// Collisions in 100 draws from a 32^6 space would be astonishing
	assert.Greater(t, len(seen), 95)
}

func TestGenerateClassCodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	codes := make([][]string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				codes[g] = append(codes[g], GenerateClassCode())
			}
		}(g)
	}
	wg.Wait()

	for _, batch := range codes {
		for _, code := range batch {
			assert.Len(t, code, 6)
		}
	}
}
