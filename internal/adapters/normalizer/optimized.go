package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_word_similarity/internal/pool"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// OptimizedNormalizer folds ASCII input through a lookup table and a pooled
// buffer. Non-ASCII input goes through strings.ToLower, so the output always
// matches DefaultNormalizer.
type OptimizedNormalizer struct {
	// Lower-case mapping for ASCII bytes (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
	}
	for i := 0; i < 128; i++ {
		b := byte(i)
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		n.asciiTable[i] = b
	}
	return n
}

// Normalize converts the input text to lower case.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	hasUpper := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 128 {
			return strings.ToLower(text)
		}
		if n.asciiTable[c] != c {
			hasUpper = true
		}
	}
	// Already folded: no allocation needed.
	if !hasUpper {
		return text
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	for i := 0; i < len(text); i++ {
		*buffer = append(*buffer, n.asciiTable[text[i]])
	}
	return string(*buffer)
}

// NormalizerType identifies a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType uses strings.ToLower directly.
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses the ASCII lookup table with pooled buffers.
	OptimizedNormalizerType
)

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer returns the normalizer for the given type.
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
