package data

import "fmt"

// An ordered sequence of points. Point order is significant and is preserved by every transformation.
type PointCloud []Point

func (pc PointCloud) Len() int {
	return len(pc)
}

// Returns the coordinates as one flat slice laid out as x0,y0,z0,x1,y1,z1,...
func (pc PointCloud) Flatten() []float64 {
	flat := make([]float64, 0, len(pc)*3)
	for _, p := range pc {
		flat = append(flat, p.X, p.Y, p.Z)
	}
	return flat
}

// Rebuilds a PointCloud from a flat coordinate slice produced by Flatten
func FromFlat(flat []float64) (PointCloud, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("flat coordinate slice of length %d is not a multiple of 3", len(flat))
	}

	pc := make(PointCloud, len(flat)/3)
	for i := range pc {
		pc[i] = Point{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
	}
	return pc, nil
}

func (pc PointCloud) Clone() PointCloud {
	if pc == nil {
		return nil
	}
	out := make(PointCloud, len(pc))
	copy(out, pc)
	return out
}
