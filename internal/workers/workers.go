package workers

// Workers aggregates background workers so the server can start them all
// with a single call.
type Workers struct {
	workers []Worker
}

// NewWorkers builds an aggregate over the given workers. Nil entries are
// dropped so callers can pass conditionally-constructed workers directly.
func NewWorkers(workers ...Worker) *Workers {
	kept := make([]Worker, 0, len(workers))
	for _, w := range workers {
		if w != nil {
			kept = append(kept, w)
		}
	}
	return &Workers{workers: kept}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
