package data

import "errors"

// Error kinds shared by the normalization, assembly, loading and writing stages.
// Callers match them with errors.Is; producers wrap them with context.
var (
	// range-based rescaling is undefined: empty cloud, all coordinates equal or non-finite values
	ErrDegeneratePointCloud = errors.New("degenerate point cloud")

	// a cloud's point count differs from the dataset's fixed point count
	ErrMismatchedPointCount = errors.New("mismatched point count")

	// a requested shard or range needs more samples than are available
	ErrInsufficientSamples = errors.New("insufficient samples")

	// an index range was already consumed by another shard
	ErrOverlappingRange = errors.New("overlapping sample range")

	// data and label lengths disagree at write time
	ErrShapeMismatch = errors.New("shape mismatch")

	ErrFileIO       = errors.New("file io")
	ErrFileNotFound = errors.New("file not found")
	ErrParse        = errors.New("parse error")
)
