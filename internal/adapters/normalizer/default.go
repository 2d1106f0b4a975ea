package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// DefaultNormalizer case-folds text and leaves everything else untouched.
// Apostrophes and whitespace are significant to the possessive feature.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize converts the input text to lower case.
func (n *DefaultNormalizer) Normalize(text string) string {
	return strings.ToLower(text)
}
