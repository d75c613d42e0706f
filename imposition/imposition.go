// Package imposition computes saddle-stitch booklet plans: which logical
// page lands on which half of which physical sheet side, so that printing
// duplex, folding each signature in half and nesting its sheets yields pages
// in reading order.
package imposition

import "fmt"

// Blank marks a sheet slot with no logical page on it. Slots go blank when
// the document is shorter than the padded signature.
const Blank = -1

// SheetSide is one printable face holding up to two logical pages.
type SheetSide struct {
	LeftPage  int
	RightPage int
}

// PrintSheet is one physical sheet of paper, printed on both faces.
type PrintSheet struct {
	Front SheetSide
	Back  SheetSide
}

// CalculateSignatureSheets lays out one signature of signatureSize logical
// pages onto signatureSize/2 sheets. Page indices are 0-based within the
// signature. The size must be a positive multiple of 4; config validation
// guarantees that, so a violation here panics.
func CalculateSignatureSheets(signatureSize int) []PrintSheet {
	if signatureSize <= 0 || signatureSize%4 != 0 {
		panic(fmt.Sprintf("imposition: signature size %d is not a positive multiple of 4", signatureSize))
	}
	n := signatureSize
	sheets := make([]PrintSheet, 0, n/2)
	for s := 0; s < n/2; s++ {
		sheets = append(sheets, PrintSheet{
			Front: SheetSide{LeftPage: n - 2*s - 1, RightPage: 2 * s},
			Back:  SheetSide{LeftPage: 2*s + 1, RightPage: n - 2*s - 2},
		})
	}
	return sheets
}

// CalculateImposition plans a whole document: ceil(totalPages/signatureSize)
// signatures, each laid out as above with local indices remapped to global
// ones. Slots past the real page count become Blank.
func CalculateImposition(totalPages, signatureSize int) []PrintSheet {
	base := CalculateSignatureSheets(signatureSize)
	signatures := (totalPages + signatureSize - 1) / signatureSize

	remap := func(local, signature int) int {
		global := signature*signatureSize + local
		if global >= totalPages {
			return Blank
		}
		return global
	}

	plan := make([]PrintSheet, 0, signatures*len(base))
	for k := 0; k < signatures; k++ {
		for _, sh := range base {
			plan = append(plan, PrintSheet{
				Front: SheetSide{
					LeftPage:  remap(sh.Front.LeftPage, k),
					RightPage: remap(sh.Front.RightPage, k),
				},
				Back: SheetSide{
					LeftPage:  remap(sh.Back.LeftPage, k),
					RightPage: remap(sh.Back.RightPage, k),
				},
			})
		}
	}
	return plan
}

// Signatures returns how many signatures a plan of totalPages needs.
func Signatures(totalPages, signatureSize int) int {
	return (totalPages + signatureSize - 1) / signatureSize
}

// Placement positions one logical page on a sheet face: uniform scale,
// vertically centred, left slot at x=0 and right slot at sheetW/2.
type Placement struct {
	X, Y  float64
	Scale float64
}

// PlacementFor computes the placement for the left (slot 0) or right
// (slot 1) half of a sheet. Dimensions are in points, origin top-left.
func PlacementFor(slot int, sheetW, sheetH, pageW, pageH float64) Placement {
	scale := sheetW / 2 / pageW
	if s := sheetH / pageH; s < scale {
		scale = s
	}
	p := Placement{
		Y:     (sheetH - pageH*scale) / 2,
		Scale: scale,
	}
	if slot == 1 {
		p.X = sheetW / 2
	}
	return p
}
