package dataset

import (
	"testing"

	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builds n distinct clouds of the given point count, tagged by their first coordinate
func clouds(tag float64, n, points int) []data.PointCloud {
	out := make([]data.PointCloud, n)
	for i := range out {
		pc := make(data.PointCloud, points)
		for j := range pc {
			pc[j] = data.NewPoint(tag+float64(i), float64(j), 0)
		}
		out[i] = pc
	}
	return out
}

func TestAssembleEmpty(t *testing.T) {
	ds, err := Assemble(nil, nil, 0)
	require.NoError(t, err)

	assert.NotNil(t, ds.Data)
	assert.NotNil(t, ds.Label)
	assert.Empty(t, ds.Data)
	assert.Empty(t, ds.Label)
	assert.Equal(t, [3]int{0, 0, 3}, ds.Shape())
}

func TestAssembleScenario(t *testing.T) {
	a := data.PointCloud{data.NewPoint(1, 0, 0)}
	b := data.PointCloud{data.NewPoint(2, 0, 0)}
	c := data.PointCloud{data.NewPoint(3, 0, 0)}

	ds, err := Assemble([]data.PointCloud{a, b}, []data.PointCloud{c}, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 1}, ds.Label)
	assert.Equal(t, []data.PointCloud{a, b, c}, ds.Data)
}

func TestAssembleFullSizeLabelsInOrder(t *testing.T) {
	zero := clouds(0, 5, 4)
	one := clouds(100, 3, 4)

	ds, err := Assemble(zero, one, len(zero)+len(one))
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1}, ds.Label)
	for i := range zero {
		assert.Equal(t, zero[i], ds.Data[i])
	}
	for i := range one {
		assert.Equal(t, one[i], ds.Data[len(zero)+i])
	}
}

func TestAssembleTruncatesWithinClassOne(t *testing.T) {
	zero := clouds(0, 3, 2)
	one := clouds(100, 3, 2)

	ds, err := Assemble(zero, one, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1}, ds.Label)
	assert.Equal(t, one[0], ds.Data[3])
}

func TestAssembleTruncatesWithinClassZero(t *testing.T) {
	ds, err := Assemble(clouds(0, 5, 2), clouds(100, 5, 2), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, ds.Label)
}

func TestAssembleOnlyClassOne(t *testing.T) {
	ds, err := Assemble(nil, clouds(100, 2, 2), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, ds.Label)
}

func TestAssembleInsufficientSamples(t *testing.T) {
	_, err := Assemble(clouds(0, 2, 2), clouds(100, 1, 2), 4)
	assert.ErrorIs(t, err, data.ErrInsufficientSamples)
}

func TestAssembleNegativeSize(t *testing.T) {
	_, err := Assemble(nil, nil, -1)
	assert.Error(t, err)
}

func TestAssembleMismatchedPointCount(t *testing.T) {
	_, err := Assemble(clouds(0, 2, 4), clouds(100, 1, 3), 3)
	assert.ErrorIs(t, err, data.ErrMismatchedPointCount)

	// the mismatched cloud is outside the requested size and is not placed
	_, err = Assemble(clouds(0, 2, 4), clouds(100, 1, 3), 2)
	assert.NoError(t, err)
}

func TestAssembleClassesAscendingOrder(t *testing.T) {
	classes := map[int][]data.PointCloud{
		7: clouds(700, 1, 2),
		2: clouds(200, 2, 2),
		4: clouds(400, 1, 2),
	}

	ds, err := AssembleClasses(classes, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 4, 7}, ds.Label)
	assert.Equal(t, classes[7][0], ds.Data[3])
}

func TestAssembleClassesRejectsNegativeClass(t *testing.T) {
	_, err := AssembleClasses(map[int][]data.PointCloud{-1: clouds(0, 1, 1)}, 1)
	assert.Error(t, err)
}

func TestAssembleSingle(t *testing.T) {
	cloud := clouds(0, 1, 2048)[0]

	ds, err := AssembleSingle(cloud)
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 2048, 3}, ds.Shape())
	assert.Equal(t, []int{DefaultLabel}, ds.Label)
}

func TestAssembleFolder(t *testing.T) {
	in := clouds(0, 4, 3)

	ds, err := AssembleFolder(in)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, map[int]int{0: 4}, ds.LabelCounts())
}

func TestDatasetValidate(t *testing.T) {
	ds := &Dataset{Data: clouds(0, 2, 2), Label: []int{0}}
	assert.ErrorIs(t, ds.Validate(), data.ErrShapeMismatch)

	ds = &Dataset{Data: append(clouds(0, 1, 2), clouds(0, 1, 3)...), Label: []int{0, 0}}
	assert.ErrorIs(t, ds.Validate(), data.ErrMismatchedPointCount)
}

func TestDatasetFlatData(t *testing.T) {
	ds, err := Assemble(clouds(0, 1, 2), clouds(10, 1, 2), 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0, 0, 1, 0, 10, 0, 0, 10, 1, 0}, ds.FlatData())
	assert.Equal(t, []int64{0, 1}, ds.Labels64())
}
