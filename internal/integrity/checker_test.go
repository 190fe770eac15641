package integrity

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serves clouds of a fixed size per path
type stubLoader struct {
	sizes map[string]int
	calls []string
}

func (l *stubLoader) Load(path string) (data.PointCloud, error) {
	l.calls = append(l.calls, path)
	n, ok := l.sizes[path]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", data.ErrFileIO, data.ErrFileNotFound, path)
	}
	return make(data.PointCloud, n), nil
}

func TestFindNonconformingScenario(t *testing.T) {
	loader := &stubLoader{sizes: map[string]int{
		filepath.Join("a", "model_2048.pcd"): 2048,
		filepath.Join("b", "model_2048.pcd"): 2000,
		filepath.Join("c", "model_2048.pcd"): 2048,
	}}

	bad, err := FindNonconforming([]string{"a", "b", "c"}, loader, "model_2048.pcd", 2048)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, bad)
	assert.Len(t, loader.calls, 3)
}

func TestCheckAllConforming(t *testing.T) {
	loader := &stubLoader{sizes: map[string]int{filepath.Join("a", "s.pcd"): 4}}

	bad, err := NewChecker(loader, "s.pcd", 4).Check([]string{"a"})
	require.NoError(t, err)
	assert.NotNil(t, bad)
	assert.Empty(t, bad)
}

func TestCheckKeepsInputOrder(t *testing.T) {
	loader := &stubLoader{sizes: map[string]int{
		filepath.Join("z", "s.pcd"): 1,
		filepath.Join("m", "s.pcd"): 5,
		filepath.Join("a", "s.pcd"): 1,
	}}

	bad, err := NewChecker(loader, "s.pcd", 5).Check([]string{"z", "m", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, bad)
}

func TestCheckAbortsOnLoadFailure(t *testing.T) {
	loader := &stubLoader{sizes: map[string]int{filepath.Join("a", "s.pcd"): 5}}

	bad, err := NewChecker(loader, "s.pcd", 5).Check([]string{"a", "missing", "a"})
	assert.Nil(t, bad)
	assert.ErrorIs(t, err, data.ErrFileNotFound)
	assert.Len(t, loader.calls, 2)
}
