package generator

import (
	"errors"
	"math/rand"
	"testing"
)

// sequenceSource replays fixed Int63 values.
type sequenceSource struct {
	values []int64
	pos    int
}

func (s *sequenceSource) Int63() int64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

func (s *sequenceSource) Seed(int64) {}

func TestSampleCountAndMembership(t *testing.T) {
	pool := []string{"the", "be", "of", "and", "a"}
	members := map[string]struct{}{}
	for _, w := range pool {
		members[w] = struct{}{}
	}
	gen := NewWithSource(rand.NewSource(42))
	for _, n := range []int{1, 3, 150, 1000} {
		words, err := gen.Sample(pool, n)
		if err != nil {
			t.Fatalf("sample %d: %v", n, err)
		}
		if len(words) != n {
			t.Fatalf("expected %d words, got %d", n, len(words))
		}
		for _, w := range words {
			if _, ok := members[w]; !ok {
				t.Fatalf("word %q not in pool", w)
			}
		}
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	pool := []string{"the", "be", "of"}
	a, err := NewWithSource(rand.NewSource(7)).Sample(pool, 20)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := NewWithSource(rand.NewSource(7)).Sample(pool, 20)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical sequences, differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestSampleFollowsSource(t *testing.T) {
	// Intn(3) reduces Int63()>>32 modulo 3.
	src := &sequenceSource{values: []int64{0 << 32, 1 << 32, 2 << 32}}
	words, err := NewWithSource(src).Sample([]string{"the", "be", "of"}, 3)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := []string{"the", "be", "of"}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, words)
		}
	}
}

func TestSampleInvalidConfiguration(t *testing.T) {
	gen := New()
	if _, err := gen.Sample(nil, 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for empty pool, got %v", err)
	}
	if _, err := gen.Sample([]string{"a"}, 0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for zero count, got %v", err)
	}
}
