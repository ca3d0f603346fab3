package geom

import "testing"

func TestDimensionCells(t *testing.T) {
	d, err := NewDimension(3, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if d.Cells() != 60 {
		t.Errorf("Cells() = %d, want 60", d.Cells())
	}
	if d.Twice().Cells() != 8*60 {
		t.Errorf("Twice().Cells() = %d, want %d", d.Twice().Cells(), 8*60)
	}
	p := d.PlusOne()
	if p.X != 4 || p.Y != 5 || p.Z != 6 {
		t.Errorf("PlusOne() = %+v, want (4,5,6)", p)
	}
}

func TestDimensionRejectsNegative(t *testing.T) {
	if _, err := NewDimension(-1, 2, 3); err == nil {
		t.Fatal("expected error for negative dimension")
	}
}

func TestDimensionRejectsOverflow(t *testing.T) {
	huge := 1 << 31
	if _, err := NewDimension(huge, huge, huge); err == nil {
		t.Fatal("expected error for overflowing dimension")
	}
}

func TestPaddedDimension(t *testing.T) {
	p := PaddedDimension(Dimension{101, 17, 17}, 1)
	if p.X != 108 {
		t.Errorf("X padded = %d, want 108", p.X)
	}
}

func TestDistributedDimensionSumsToFull(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 7} {
		total := 0
		for rank := 0; rank < size; rank++ {
			dd := splitZ(Dimension{1, 1, 97}, rank, size)
			total += dd.Z
			if dd.ZFull != 97 {
				t.Errorf("ZFull = %d, want 97", dd.ZFull)
			}
		}
		if total != 97 {
			t.Errorf("size=%d: sum of local z-lengths = %d, want 97", size, total)
		}
	}
}

func TestDualDimensionTransposesFreq(t *testing.T) {
	dd := NewDualDimension(Dimension{100, 200, 400}, 0, 4)
	if dd.Real.X != 100 || dd.Real.Y != 200 || dd.Real.Z != 100 {
		t.Errorf("real = %+v, want x=100,y=200,z=100", dd.Real)
	}
	if dd.Freq.X != 100 || dd.Freq.Y != 400 || dd.Freq.Z != 50 {
		t.Errorf("freq = %+v, want x=100,y=400,z=50", dd.Freq)
	}
	if dd.Freq.ZFull != 200 {
		t.Errorf("freq.ZFull = %d, want 200 (original y extent)", dd.Freq.ZFull)
	}
}
