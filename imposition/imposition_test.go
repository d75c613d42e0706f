package imposition

import "testing"

func TestSignatureSheetsSixteen(t *testing.T) {
	sheets := CalculateSignatureSheets(16)
	if len(sheets) != 8 {
		t.Fatalf("sheet count: got=%d want=8", len(sheets))
	}
	if s := sheets[0]; s.Front.LeftPage != 15 || s.Front.RightPage != 0 {
		t.Fatalf("sheet 0 front: %+v", s.Front)
	}
	if s := sheets[0]; s.Back.LeftPage != 1 || s.Back.RightPage != 14 {
		t.Fatalf("sheet 0 back: %+v", s.Back)
	}
	if s := sheets[3]; s.Back.LeftPage != 7 || s.Back.RightPage != 8 {
		t.Fatalf("sheet 3 back: %+v", s.Back)
	}
}

func TestSignatureCoversEveryPageOnce(t *testing.T) {
	for _, n := range []int{4, 8, 12, 16, 32, 64} {
		sheets := CalculateSignatureSheets(n)
		if len(sheets) != n/2 {
			t.Fatalf("n=%d sheet count: got=%d want=%d", n, len(sheets), n/2)
		}
		seen := make([]int, n)
		for _, s := range sheets {
			for _, p := range []int{s.Front.LeftPage, s.Front.RightPage, s.Back.LeftPage, s.Back.RightPage} {
				if p < 0 || p >= n {
					t.Fatalf("n=%d slot out of range: %d", n, p)
				}
				seen[p]++
			}
		}
		for p, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d page %d appears %d times", n, p, c)
			}
		}
	}
}

func TestBadSignatureSizePanics(t *testing.T) {
	for _, n := range []int{0, -4, 6, 10} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("size %d did not panic", n)
				}
			}()
			CalculateSignatureSheets(n)
		}()
	}
}

func TestImpositionPadsShortLastSignature(t *testing.T) {
	plan := CalculateImposition(20, 16)
	if len(plan) != 16 {
		t.Fatalf("plan length: got=%d want=16", len(plan))
	}
	// sheet 8 is the second signature's first sheet: local 15 maps to the
	// nonexistent page 31, local 0 to page 16
	s := plan[8]
	if s.Front.LeftPage != Blank {
		t.Fatalf("sheet 8 front left: got=%d want=Blank", s.Front.LeftPage)
	}
	if s.Front.RightPage != 16 {
		t.Fatalf("sheet 8 front right: got=%d want=16", s.Front.RightPage)
	}
}

func TestImpositionExactFit(t *testing.T) {
	plan := CalculateImposition(16, 16)
	if len(plan) != 8 {
		t.Fatalf("plan length: got=%d want=8", len(plan))
	}
	for i, s := range plan {
		for _, p := range []int{s.Front.LeftPage, s.Front.RightPage, s.Back.LeftPage, s.Back.RightPage} {
			if p == Blank {
				t.Fatalf("sheet %d has a blank slot in an exact-fit plan", i)
			}
		}
	}
}

func TestSignaturesCount(t *testing.T) {
	if got := Signatures(20, 16); got != 2 {
		t.Fatalf("Signatures(20,16): got=%d want=2", got)
	}
	if got := Signatures(16, 16); got != 1 {
		t.Fatalf("Signatures(16,16): got=%d want=1", got)
	}
}

func TestPlacementScaleAndOffsets(t *testing.T) {
	// 11x8.5in sheet in points, 8.5x11in logical page
	const sheetW, sheetH = 792.0, 612.0
	const pageW, pageH = 612.0, 792.0

	left := PlacementFor(0, sheetW, sheetH, pageW, pageH)
	// height binds: 612/792
	wantScale := sheetH / pageH
	if diff := left.Scale - wantScale; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("scale: got=%g want=%g", left.Scale, wantScale)
	}
	if left.X != 0 {
		t.Fatalf("left slot x: got=%g want=0", left.X)
	}
	if left.Y != 0 {
		t.Fatalf("height-bound placement should touch top and bottom: y=%g", left.Y)
	}

	right := PlacementFor(1, sheetW, sheetH, pageW, pageH)
	if right.X != sheetW/2 {
		t.Fatalf("right slot x: got=%g want=%g", right.X, sheetW/2)
	}
	if right.Scale != left.Scale {
		t.Fatalf("slots must share the scale: %g vs %g", right.Scale, left.Scale)
	}
}
