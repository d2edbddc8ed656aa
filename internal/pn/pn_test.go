package pn

import "testing"

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(1024, 123)
	b := Generate(1024, 123)
	if len(a) != 1024 {
		t.Fatalf("len(a) = %d, want 1024", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequence mismatch at index %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestGenerateDomain(t *testing.T) {
	seq := Generate(500, 7)
	for i, v := range seq {
		if v != -1 && v != 1 {
			t.Fatalf("seq[%d] = %v, want -1 or 1", i, v)
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a := Generate(2000, 1)
	b := Generate(2000, 2)
	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	// With overwhelming probability a meaningful fraction of chips differ.
	if diff < len(a)/4 {
		t.Fatalf("sequences for different seeds too similar: %d/%d differ", diff, len(a))
	}
}

func TestGenerateZeroLength(t *testing.T) {
	seq := Generate(0, 42)
	if len(seq) != 0 {
		t.Fatalf("len(seq) = %d, want 0", len(seq))
	}
}
