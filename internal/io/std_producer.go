package io

import (
	"sync"
)

type StandardProducer struct {
	paths []string
}

func NewStandardProducer(paths []string) *StandardProducer {
	return &StandardProducer{
		paths: paths,
	}
}

// Submits one WorkUnit per path to the provided work channel, in path order.
// Closes the channel when all work is submitted or as soon as abort is closed.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, abort <-chan struct{}) {
	defer wg.Done()
	defer close(work)

	for i, path := range p.paths {
		select {
		case work <- &WorkUnit{Index: i, Path: path}:
		case <-abort:
			return
		}
	}
}
