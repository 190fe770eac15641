package io

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ecopia-map/pcd_dataset/internal/converters"
	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/ecopia-map/pcd_dataset/internal/pcd"
	"github.com/ecopia-map/pcd_dataset/tools"
)

type LoadOptions struct {
	Loader             pcd.Loader
	Converter          converters.CloudConverter // nil means converters.Identity
	ExpectedPointCount int                       // <= 0 skips the check
	Workers            int                       // <= 0 means one per CPU
	Label              string                    // used in progress messages
}

// LoadAll loads, checks and converts every path with one producer and a pool of consumers.
// Results keep the order of paths. The first failure stops the pool and is returned;
// no partial result is returned in that case.
func LoadAll(paths []string, opts LoadOptions) ([]data.PointCloud, error) {
	converter := opts.Converter
	if converter == nil {
		converter = converters.Identity
	}

	numConsumers := opts.Workers
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}

	results := make([]data.PointCloud, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	// init channel where to submit work with a buffer 5 times greater than the number of consumers
	workChannel := make(chan *WorkUnit, numConsumers*5)

	// every consumer may report at most one error, so sends never block
	errorChannel := make(chan error, numConsumers)

	abort := make(chan struct{})
	var once sync.Once
	fail := func() { once.Do(func() { close(abort) }) }

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	producer := NewStandardProducer(paths)
	go producer.Produce(workChannel, &waitGroup, abort)

	var done int64
	progress := newProgressReporter(opts.Label, len(paths))
	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := NewStandardConsumer(opts.Loader, converter, opts.ExpectedPointCount)
		consumer.done = &done
		consumer.progress = progress
		go consumer.Consume(workChannel, results, errorChannel, abort, fail, &waitGroup)
	}

	// wait for producer and consumers to finish
	waitGroup.Wait()
	close(errorChannel)

	if err, ok := <-errorChannel; ok {
		return nil, err
	}

	tools.LogOutput(fmt.Sprintf("%d %s loaded successfully", len(results), pluralClouds(opts.Label)))
	return results, nil
}

// Logs every 10% of completed work
func newProgressReporter(label string, total int) func(done int64) {
	var mu sync.Mutex
	oldProgress := -1
	return func(done int64) {
		progress := int(100 * done / int64(total))
		mu.Lock()
		defer mu.Unlock()
		if progress != oldProgress && progress%10 == 0 {
			oldProgress = progress
			tools.LogOutput(fmt.Sprintf("loading %s progress: %d%%", pluralClouds(label), progress))
		}
	}
}

func pluralClouds(label string) string {
	if label == "" {
		return "pointclouds"
	}
	return label + " pointclouds"
}
