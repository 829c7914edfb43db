// Package generator builds typing test sequences.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidConfiguration reports an empty pool or a non-positive sequence length.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Generator samples words from a pool.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator driven by src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Sample draws count words uniformly, with replacement.
func (g *Generator) Sample(pool []string, count int) ([]string, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: word pool is empty", ErrInvalidConfiguration)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: sequence length must be > 0, got %d", ErrInvalidConfiguration, count)
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, pool[g.rnd.Intn(len(pool))])
	}
	return result, nil
}
