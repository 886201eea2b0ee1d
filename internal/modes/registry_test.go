package modes

import (
	"math/rand"
	"testing"
)

func TestRegistryNextWraps(t *testing.T) {
	r := NewRegistry(
		Mode{Name: "a", Kind: Reactive},
		Mode{Name: "b", Kind: Periodic},
		Mode{Name: "c", Kind: Periodic},
	)

	idx := 0
	for _, want := range []int{1, 2, 0, 1} {
		idx = r.Next(idx)
		if idx != want {
			t.Fatalf("Next = %d, want %d", idx, want)
		}
	}
}

func TestRegistryAt(t *testing.T) {
	r := NewRegistry(Mode{Name: "a", Kind: Reactive})

	if m, ok := r.At(0); !ok || m.Name != "a" {
		t.Errorf("At(0) = %v, %v", m.Name, ok)
	}
	if _, ok := r.At(1); ok {
		t.Error("At(1) reported ok for out-of-range index")
	}
	if _, ok := r.At(-1); ok {
		t.Error("At(-1) reported ok for out-of-range index")
	}
}

func TestRegistryIsReactive(t *testing.T) {
	r := NewRegistry(
		Mode{Name: "a", Kind: Reactive},
		Mode{Name: "b", Kind: Periodic},
	)
	if !r.IsReactive(0) || r.IsReactive(1) || r.IsReactive(5) {
		t.Error("IsReactive misclassified an entry")
	}
}

func TestRegistryEmptyNext(t *testing.T) {
	r := NewRegistry()
	if r.Next(0) != 0 {
		t.Error("empty registry Next != 0")
	}
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := DefaultRegistry(rand.New(rand.NewSource(1)))
	want := []string{
		"rPulse", "rPulseDecay", "rRand", "rRandSwap",
		"fPulseUp", "fPulseUpDown", "fFlash", "fFlashDecay", "fRandom",
	}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("registry has %d modes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mode %d = %q, want %q", i, got[i], want[i])
		}
	}
	// Reactive block first, periodic block after.
	for i := 0; i < 4; i++ {
		if !r.IsReactive(i) {
			t.Errorf("mode %d should be reactive", i)
		}
	}
	for i := 4; i < 9; i++ {
		if r.IsReactive(i) {
			t.Errorf("mode %d should be periodic", i)
		}
	}
}
