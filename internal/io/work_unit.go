package io

// Contains the minimal data needed to load a single sample: its file path and the slot its
// point cloud must occupy in the result slice
type WorkUnit struct {
	Index int
	Path  string
}
