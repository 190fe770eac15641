package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenAndFromFlat(t *testing.T) {
	pc := PointCloud{NewPoint(1, 2, 3), NewPoint(4, 5, 6)}

	flat := pc.Flatten()
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, flat)

	back, err := FromFlat(flat)
	require.NoError(t, err)
	assert.Equal(t, pc, back)
}

func TestFromFlatRejectsPartialPoint(t *testing.T) {
	_, err := FromFlat([]float64{1, 2})
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	pc := PointCloud{NewPoint(1, 1, 1)}
	cp := pc.Clone()
	cp[0].X = 9

	assert.Equal(t, 1.0, pc[0].X)
	assert.Nil(t, PointCloud(nil).Clone())
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrDegeneratePointCloud, ErrMismatchedPointCount, ErrInsufficientSamples,
		ErrOverlappingRange, ErrShapeMismatch, ErrFileIO, ErrFileNotFound, ErrParse,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}
