package watermark

import "testing"

func TestStreamAdapterEmitsOnFullFrame(t *testing.T) {
	w, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a := NewStreamAdapter(w, 3)
	frame := w.frameLen()

	out, err := a.Write(make([]float64, frame-10))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("Write emitted %d samples before a full frame accumulated", len(out))
	}

	out, err = a.Write(make([]float64, 20))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(out) != frame {
		t.Fatalf("Write emitted %d samples, want exactly one frame (%d)", len(out), frame)
	}

	got, found := w.Extract(out)
	if !found || got != 3 {
		t.Fatalf("Extract(emitted frame) = (%d, %v), want (3, true)", got, found)
	}

	residual := a.Flush()
	if len(residual) != 10 {
		t.Fatalf("Flush returned %d samples, want 10", len(residual))
	}
}

func TestStreamAdapterEmitsMultipleFrames(t *testing.T) {
	w, _ := New(smallConfig())
	a := NewStreamAdapter(w, 11)
	frame := w.frameLen()

	out, err := a.Write(make([]float64, 2*frame+5))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(out) != 2*frame {
		t.Fatalf("Write emitted %d samples, want %d", len(out), 2*frame)
	}
	if residual := a.Flush(); len(residual) != 5 {
		t.Fatalf("Flush returned %d samples, want 5", len(residual))
	}
}

func TestStreamAdapterFlushWithoutFullFrame(t *testing.T) {
	w, _ := New(smallConfig())
	a := NewStreamAdapter(w, 1)

	chunk := []float64{1, 2, 3, 4, 5}
	out, err := a.Write(chunk)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("Write emitted %d samples, want 0", len(out))
	}

	residual := a.Flush()
	if len(residual) != len(chunk) {
		t.Fatalf("Flush returned %d samples, want %d", len(residual), len(chunk))
	}
	for i, v := range chunk {
		if residual[i] != v {
			t.Fatalf("residual[%d] = %v, want %v", i, residual[i], v)
		}
	}
}
