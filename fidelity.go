package img2mosaic

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Fidelity measures how far a mosaic strays from its source colors, in
// LumaDistance units.
type Fidelity struct {
	MeanDistance float64
	StdDev       float64
	MaxDistance  float64
	// Substituted counts cells that got a farther color because the
	// closest one ran out.
	Substituted int
}

// MeasureFidelity computes distance statistics over assignments.
func MeasureFidelity(assignments []Assignment) Fidelity {
	if len(assignments) == 0 {
		return Fidelity{}
	}
	distances := make([]float64, len(assignments))
	var fid Fidelity
	for i, a := range assignments {
		distances[i] = LumaDistance(a.Color, a.Source)
		if a.Substituted {
			fid.Substituted++
		}
	}
	fid.MeanDistance, fid.StdDev = stat.MeanStdDev(distances, nil)
	if math.IsNaN(fid.StdDev) {
		fid.StdDev = 0
	}
	fid.MaxDistance = floats.Max(distances)
	return fid
}
