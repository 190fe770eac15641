package io

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ecopia-map/pcd_dataset/internal/converters"
	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/pcd"
)

type StandardConsumer struct {
	loader             pcd.Loader
	converter          converters.CloudConverter
	expectedPointCount int
	done               *int64
	progress           func(done int64)
}

// expectedPointCount <= 0 disables the point count check
func NewStandardConsumer(loader pcd.Loader, converter converters.CloudConverter, expectedPointCount int) *StandardConsumer {
	return &StandardConsumer{
		loader:             loader,
		converter:          converter,
		expectedPointCount: expectedPointCount,
	}
}

// Continually consumes WorkUnits submitted to a work channel storing each loaded and converted cloud
// in results[unit.Index]. Continues working until the work channel is closed or abort is closed.
// On error submits it to the error channel, calls fail and quits.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, results []data.PointCloud, errchan chan error, abort <-chan struct{}, fail func(), waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	for {
		var work *WorkUnit
		var ok bool
		select {
		case <-abort:
			return
		case work, ok = <-workchan:
		}
		if !ok {
			// channel was closed by producer
			return
		}

		cloud, err := c.doWork(work)
		if err != nil {
			errchan <- err
			fail()
			return
		}
		results[work.Index] = cloud

		if c.done != nil {
			n := atomic.AddInt64(c.done, 1)
			if c.progress != nil {
				c.progress(n)
			}
		}
	}
}

// Loads, checks and converts the cloud of a single work unit
func (c *StandardConsumer) doWork(work *WorkUnit) (data.PointCloud, error) {
	cloud, err := c.loader.Load(work.Path)
	if err != nil {
		return nil, err
	}

	if c.expectedPointCount > 0 && len(cloud) != c.expectedPointCount {
		return nil, fmt.Errorf("%w: %s has %d points, expected %d",
			data.ErrMismatchedPointCount, work.Path, len(cloud), c.expectedPointCount)
	}

	converted, err := c.converter.Convert(cloud)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", work.Path, err)
	}
	return converted, nil
}
