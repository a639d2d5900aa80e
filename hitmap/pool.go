package hitmap

import (
	"sync"

	"github.com/bioinf-mcb/mdeepfri/apps/mmseqs"
)

type task struct {
	index int
	hit   mmseqs.Hit
}

type taskResult struct {
	index int
	hm    HitMap
	err   *HitError
}

type pool struct {
	wg      *sync.WaitGroup
	tasks   chan task
	results chan taskResult
}

func newMapWorkers(conf Config, src StructureSource, numWorkers int) pool {
	tasks := make(chan task, numWorkers*2)
	results := make(chan taskResult, numWorkers*2)
	wg := &sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				hm, err := conf.MapHit(src, t.hit)
				if err != nil {
					hitErr := err.(HitError)
					results <- taskResult{index: t.index, err: &hitErr}
				} else {
					results <- taskResult{index: t.index, hm: hm}
				}
			}
		}()
	}
	go func() {
		// wait for workers to finish sending results
		wg.Wait()
		close(results)
	}()
	return pool{wg, tasks, results}
}

func (p pool) enqueue(index int, hit mmseqs.Hit) {
	p.tasks <- task{index, hit}
}

func (p pool) done() {
	close(p.tasks)
}
