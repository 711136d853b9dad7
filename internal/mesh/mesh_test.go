package mesh

import "testing"

func TestNewRejectsNonPositive(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("expected error for nc=0")
	}
	if _, err := New(-3); err == nil {
		t.Error("expected error for negative nc")
	}
}

func TestNewBufferLengths(t *testing.T) {
	m, err := New(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 8 * 8 * 8
	if len(m.Density) != want || len(m.KSpace) != want || len(m.Potential) != want {
		t.Fatalf("expected all buffers length %d, got density=%d kspace=%d potential=%d",
			want, len(m.Density), len(m.KSpace), len(m.Potential))
	}
}

func TestIdxCoordsRoundTrip(t *testing.T) {
	m, _ := New(6)
	for i := 0; i < m.Nc; i++ {
		for j := 0; j < m.Nc; j++ {
			for k := 0; k < m.Nc; k++ {
				n := m.Idx(i, j, k)
				gi, gj, gk := m.Coords(n)
				if gi != i || gj != j || gk != k {
					t.Fatalf("round trip failed for (%d,%d,%d): got (%d,%d,%d)", i, j, k, gi, gj, gk)
				}
			}
		}
	}
}

func TestIdxPeriodicWrap(t *testing.T) {
	m, _ := New(4)
	if m.Idx(-1, 0, 0) != m.Idx(3, 0, 0) {
		t.Error("expected -1 to wrap to Nc-1 on the i axis")
	}
	if m.Idx(0, 4, 0) != m.Idx(0, 0, 0) {
		t.Error("expected Nc to wrap to 0 on the j axis")
	}
}

func TestZeroDensity(t *testing.T) {
	m, _ := New(4)
	for i := range m.Density {
		m.Density[i] = complex(1, 1)
	}
	m.ZeroDensity()
	for i, v := range m.Density {
		if v != 0 {
			t.Fatalf("cell %d not zeroed: %v", i, v)
		}
	}
}
