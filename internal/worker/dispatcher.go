// Package worker runs the recommendation pipeline off the calling
// goroutine behind an id-correlated message protocol. A dispatcher owns at
// most one persistent worker goroutine; requests multiplex over it with no
// concurrency limit.
package worker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gearmatch/internal/domain"
	"gearmatch/internal/recommend"
)

// CatalogProvider supplies the product list to score for a category.
type CatalogProvider interface {
	Products(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

// queueDepth bounds the request channel, not the number of in-flight
// callers; callers block once the queue fills.
const queueDepth = 256

// Dispatcher lazily starts one background worker and correlates responses
// to callers by request id. The lazy start is barrier-guarded: concurrent
// first calls observe a single construction, never two workers.
type Dispatcher struct {
	catalogs CatalogProvider

	mu       sync.Mutex
	nextID   uint64
	running  bool
	requests chan Request
	quit     chan struct{}
	pending  map[uint64]chan Response
}

// NewDispatcher creates a dispatcher; the worker starts on first use.
func NewDispatcher(catalogs CatalogProvider) *Dispatcher {
	return &Dispatcher{
		catalogs: catalogs,
		pending:  make(map[uint64]chan Response),
	}
}

// Score runs the pipeline on the background worker and waits for the
// response. candidateIDs narrows the loaded catalog before scoring; empty
// means the full catalog. The context is honored only while waiting: an
// expired context abandons the request locally, it does not cancel the
// computation.
func (d *Dispatcher) Score(ctx context.Context, category domain.Category, answers domain.Answers, opts recommend.Options, candidateIDs []string) (domain.RecommendationResult, error) {
	reply := make(chan Response, 1)

	d.mu.Lock()
	d.ensureWorkerLocked()
	d.nextID++
	req := Request{ID: d.nextID, Type: TypeScore, Category: category, Answers: answers, Options: opts, CandidateIDs: candidateIDs}
	d.pending[req.ID] = reply
	requests := d.requests
	d.mu.Unlock()

	select {
	case requests <- req:
	case <-ctx.Done():
		d.forget(req.ID)
		return domain.RecommendationResult{}, ctx.Err()
	}

	select {
	case resp := <-reply:
		if resp.Type == TypeError {
			return domain.RecommendationResult{}, fmt.Errorf("worker: %s", resp.Error)
		}
		if resp.Data == nil {
			return domain.RecommendationResult{}, fmt.Errorf("worker: empty result for request %d", resp.ID)
		}
		return *resp.Data, nil
	case <-ctx.Done():
		d.forget(req.ID)
		return domain.RecommendationResult{}, ctx.Err()
	}
}

// Terminate stops the worker and rejects every still-pending request. A
// later Score call starts a fresh worker.
func (d *Dispatcher) Terminate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	close(d.quit)
	d.running = false
	d.rejectAllLocked(domain.ErrDispatcherTerminated)
}

// ensureWorkerLocked starts the worker goroutine if none is running.
// Callers hold d.mu, which is the construction barrier.
func (d *Dispatcher) ensureWorkerLocked() {
	if d.running {
		return
	}
	d.requests = make(chan Request, queueDepth)
	d.quit = make(chan struct{})
	d.running = true
	go d.run(d.requests, d.quit)
}

func (d *Dispatcher) run(requests chan Request, quit chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			// Worker died; fail the in-flight requests and drop the
			// handle so the next call respawns a fresh worker. When the
			// handle already points at a newer worker (Terminate plus
			// respawn raced the panic), the pending entries belong to
			// that worker and must be left alone.
			log.Printf("worker: fatal: %v", r)
			d.mu.Lock()
			if d.requests == requests {
				d.running = false
				d.rejectAllLocked(fmt.Errorf("worker failed: %v", r))
			}
			d.mu.Unlock()
		}
	}()

	for {
		select {
		case <-quit:
			return
		case req := <-requests:
			d.deliver(d.handle(req))
		}
	}
}

func (d *Dispatcher) handle(req Request) Response {
	products, err := d.catalogs.Products(context.Background(), req.Category)
	if err != nil {
		return Response{ID: req.ID, Type: TypeError, Error: err.Error()}
	}
	result, err := recommend.Run(req.Category, req.Answers, recommend.Narrow(products, req.CandidateIDs), req.Options)
	if err != nil {
		return Response{ID: req.ID, Type: TypeError, Error: err.Error()}
	}
	return Response{ID: req.ID, Type: TypeResult, Data: &result}
}

func (d *Dispatcher) deliver(resp Response) {
	d.mu.Lock()
	reply, ok := d.pending[resp.ID]
	delete(d.pending, resp.ID)
	d.mu.Unlock()
	if ok {
		reply <- resp
	}
}

func (d *Dispatcher) forget(id uint64) {
	d.mu.Lock()
	delete(d.pending, id)
	d.mu.Unlock()
}

// rejectAllLocked sends an error response to every pending caller.
func (d *Dispatcher) rejectAllLocked(err error) {
	for id, reply := range d.pending {
		reply <- Response{ID: id, Type: TypeError, Error: err.Error()}
		delete(d.pending, id)
	}
}
