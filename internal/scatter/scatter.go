// Package scatter places non-overlapping circular particles inside a disk
// by rejection sampling. It is the spawn-layout generator for sand clusters.
package scatter

import (
	"math"
	"math/rand"
)

type Point struct {
	X, Y float64
}

func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sample draws up to n points inside the disk (center, diskR) such that no
// two points are closer than 2*grainR. Each point gets up to retries draws;
// when the budget runs out the point is dropped, so the result may hold fewer
// than n points. Sample never fails.
//
// Candidates are drawn in polar form: uniform angle, uniform radius. That is
// deliberately not area-uniform, it piles density toward the center, which is
// the look the spawn wants.
func Sample(n int, center Point, diskR, grainR float64, retries int, rng *rand.Rand) []Point {
	placed := make([]Point, 0, n)

	for i := 0; i < n; i++ {
		for attempt := 0; attempt < retries; attempt++ {
			angle := rng.Float64() * 2 * math.Pi
			radius := rng.Float64() * diskR
			cand := Point{
				X: center.X + radius*math.Cos(angle),
				Y: center.Y + radius*math.Sin(angle),
			}
			if fits(cand, placed, 2*grainR) {
				placed = append(placed, cand)
				break
			}
		}
	}

	return placed
}

// fits reports whether cand keeps at least minDist from every placed point.
// All-pairs scan; n stays in the hundreds here so a spatial grid would be
// overkill.
func fits(cand Point, placed []Point, minDist float64) bool {
	for _, p := range placed {
		if cand.DistanceTo(p) < minDist {
			return false
		}
	}
	return true
}
