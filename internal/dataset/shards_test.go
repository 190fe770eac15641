package dataset

import (
	"testing"

	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRejectsOverlap(t *testing.T) {
	l := NewLedger(map[int]int{0: 10})

	require.NoError(t, l.Claim(0, 0, 4))
	require.NoError(t, l.Claim(0, 6, 10))
	assert.ErrorIs(t, l.Claim(0, 3, 5), data.ErrOverlappingRange)
	require.NoError(t, l.Claim(0, 4, 6))

	assert.Equal(t, 10, l.Consumed(0))
	assert.Equal(t, 0, l.Remaining(0))
	assert.Equal(t, []Range{{0, 4}, {4, 6}, {6, 10}}, l.Claimed(0))
}

func TestLedgerBounds(t *testing.T) {
	l := NewLedger(map[int]int{0: 3})

	assert.ErrorIs(t, l.Claim(0, 2, 4), data.ErrInsufficientSamples)
	assert.ErrorIs(t, l.Claim(1, 0, 1), data.ErrInsufficientSamples)
	assert.Error(t, l.Claim(0, 2, 1))
	assert.Error(t, l.Claim(0, -1, 1))
	assert.NoError(t, l.Claim(0, 1, 1))
	assert.Equal(t, 0, l.Cursor(0))
}

func TestPlanShardsTrainTestLayout(t *testing.T) {
	classes := map[int][]data.PointCloud{
		0: clouds(0, 2913, 1),
		1: clouds(10000, 731, 1),
	}
	specs := []ShardSpec{
		{Name: "train0", Size: 2048, Take: map[int]int{0: 1648, 1: 400}},
		{Name: "test0", Size: 1024, Take: map[int]int{0: 848, 1: 200}},
	}

	shards, err := PlanShards(classes, specs)
	require.NoError(t, err)
	require.Len(t, shards, 2)

	train, test := shards[0], shards[1]
	assert.Equal(t, "train0", train.Name)
	assert.Equal(t, map[int]int{0: 1648, 1: 400}, train.Dataset.LabelCounts())
	assert.Equal(t, map[int]int{0: 848, 1: 176}, test.Dataset.LabelCounts())

	assert.Equal(t, Range{0, 1648}, train.Ranges[0])
	assert.Equal(t, Range{1648, 2496}, test.Ranges[0])
	assert.Equal(t, Range{400, 600}, test.Ranges[1])

	// first sample of the test shard is airplane 1648, first car is car 400
	assert.Equal(t, classes[0][1648], test.Dataset.Data[0])
	assert.Equal(t, classes[1][400], test.Dataset.Data[848])
}

func TestPlanShardsDisjoint(t *testing.T) {
	classes := map[int][]data.PointCloud{
		0: clouds(0, 6, 1),
		1: clouds(100, 4, 1),
	}
	specs := []ShardSpec{
		{Name: "a", Size: 5, Take: map[int]int{0: 3, 1: 2}},
		{Name: "b", Size: 5, Take: map[int]int{0: 3, 1: 2}},
	}

	shards, err := PlanShards(classes, specs)
	require.NoError(t, err)

	seen := map[float64]bool{}
	for _, s := range shards {
		for _, cloud := range s.Dataset.Data {
			tag := cloud[0].X
			assert.False(t, seen[tag], "sample %v used twice", tag)
			seen[tag] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestPlanShardsExceedsClass(t *testing.T) {
	classes := map[int][]data.PointCloud{0: clouds(0, 3, 1)}
	specs := []ShardSpec{
		{Name: "a", Size: 2, Take: map[int]int{0: 2}},
		{Name: "b", Size: 2, Take: map[int]int{0: 2}},
	}

	shards, err := PlanShards(classes, specs)
	assert.Nil(t, shards)
	assert.ErrorIs(t, err, data.ErrInsufficientSamples)
	assert.Contains(t, err.Error(), `shard "b"`)
}

func TestPlanShardsSizeLargerThanTake(t *testing.T) {
	classes := map[int][]data.PointCloud{0: clouds(0, 10, 1)}
	_, err := PlanShards(classes, []ShardSpec{{Name: "a", Size: 5, Take: map[int]int{0: 4}}})
	assert.ErrorIs(t, err, data.ErrInsufficientSamples)
}

func TestPlanShardsFillWithoutTake(t *testing.T) {
	classes := map[int][]data.PointCloud{
		0: clouds(0, 3, 1),
		1: clouds(100, 3, 1),
	}
	specs := []ShardSpec{
		{Name: "a", Size: 4},
		{Name: "b", Size: 2},
	}

	shards, err := PlanShards(classes, specs)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1}, shards[0].Dataset.Label)
	assert.Equal(t, []int{1, 1}, shards[1].Dataset.Label)
	assert.Equal(t, Range{1, 3}, shards[1].Ranges[1])
}

func TestPlanShardsDuplicateName(t *testing.T) {
	classes := map[int][]data.PointCloud{0: clouds(0, 4, 1)}
	_, err := PlanShards(classes, []ShardSpec{{Name: "a", Size: 1}, {Name: "a", Size: 1}})
	assert.Error(t, err)
}
