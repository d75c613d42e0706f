package layout

// Conversion constants between the units that appear at the package
// boundaries. All layout arithmetic inside this module is done in points;
// configuration uses inches and the canvas renderer draws in millimetres.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	InToPt = 72.0
	PtToIn = 1.0 / InToPt
)

// InchesToPt converts inches to points.
func InchesToPt(in float64) float64 { return in * InToPt }
