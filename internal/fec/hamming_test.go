package fec

import (
	"math/rand/v2"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte{1, 0, 1, 1, 0, 0, 1, 0}
	encoded, err := Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded) != 14 {
		t.Fatalf("len(encoded) = %d, want 14", len(encoded))
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(data) {
		t.Fatalf("len(decoded) = %d, want %d", len(decoded), len(data))
	}
	for i := range data {
		if decoded[i] != data[i] {
			t.Fatalf("decoded[%d] = %d, want %d", i, decoded[i], data[i])
		}
	}
}

func TestDecodeCorrectsSingleBitError(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		data := make([]byte, 4)
		for i := range data {
			data[i] = byte(rng.IntN(2))
		}
		encoded, err := Encode(data)
		if err != nil {
			t.Fatal(err)
		}
		flip := rng.IntN(7)
		corrupted := make([]byte, len(encoded))
		copy(corrupted, encoded)
		corrupted[flip] ^= 1

		decoded, err := Decode(corrupted)
		if err != nil {
			t.Fatal(err)
		}
		for i := range data {
			if decoded[i] != data[i] {
				t.Fatalf("trial %d: flip bit %d not corrected: got %v, want %v", trial, flip, decoded, data)
			}
		}
	}
}

func TestEncodeLengthError(t *testing.T) {
	_, err := Encode([]byte{1, 0, 1})
	if err == nil {
		t.Fatal("expected error for length not a multiple of 4")
	}
}

func TestDecodeLengthError(t *testing.T) {
	_, err := Decode([]byte{1, 0, 1})
	if err == nil {
		t.Fatal("expected error for length not a multiple of 7")
	}
}

func TestDecodeNoError(t *testing.T) {
	data := []byte{1, 1, 0, 0}
	encoded, err := Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	for i := range data {
		if decoded[i] != data[i] {
			t.Fatalf("decoded[%d] = %d, want %d", i, decoded[i], data[i])
		}
	}
}
