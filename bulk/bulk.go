package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/signadot/tony-format/upd/debug"
	"github.com/signadot/tony-format/upd/eval"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/logbuilder"
	"github.com/signadot/tony-format/upd/modifier"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type Options struct {
	// Update is an update document such as {"$inc": {"n": 1}}.
	Update *ir.Document
	// Filter selects the documents to update. Nil selects all.
	Filter *eval.Filter
	// Workers defaults to GOMAXPROCS.
	Workers int
	// Rate limits documents per second. 0 or negative is unlimited.
	Rate float64
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Result is the outcome for the document at Index in the input.
type Result struct {
	Index int
	Doc   *ir.Document
	// Matched is false when the filter skipped the document.
	Matched bool
	// NoOp is true when no modifier changed the document.
	NoOp bool
	// Log holds the final values of the updated fields. It is nil when
	// the document was skipped or failed.
	Log *logbuilder.LogBuilder
	// Err is a per document failure. The document may be partially
	// updated when a later modifier fails.
	Err error
}

type Runner struct {
	update  *ir.Document
	filter  *eval.Filter
	workers int
	limiter *rate.Limiter
	logger  *slog.Logger
}

func New(opts Options) (*Runner, error) {
	if opts.Update == nil {
		return nil, fmt.Errorf("%w: no update", modifier.ErrMalformedUpdate)
	}
	// fail early on a bad update rather than once per worker
	if _, err := modifier.FromUpdate(opts.Update); err != nil {
		return nil, err
	}
	r := &Runner{
		update:  opts.Update,
		filter:  opts.Filter,
		workers: opts.Workers,
		logger:  opts.Logger,
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if opts.Rate <= 0 {
		r.limiter = rate.NewLimiter(rate.Inf, 1)
	} else {
		r.limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}
	return r, nil
}

type job struct {
	index int
	doc   *ir.Document
}

// Stream reads documents from in until it is closed and calls emit with
// each result in input order. emit is called from a single goroutine. An
// error from emit or the cancellation of ctx stops the run.
func (r *Runner) Stream(ctx context.Context, in <-chan *ir.Document, emit func(Result) error) error {
	workerMods := make([][]modifier.Modifier, r.workers)
	for w := range workerMods {
		mods, err := modifier.FromUpdate(r.update)
		if err != nil {
			return err
		}
		workerMods[w] = mods
	}
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job)
	results := make(chan Result)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; ; i++ {
			var (
				doc *ir.Document
				ok  bool
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case doc, ok = <-in:
			}
			if !ok {
				return nil
			}
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
			select {
			case jobs <- job{index: i, doc: doc}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var wg sync.WaitGroup
	for w, mods := range workerMods {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				res := r.process(mods, j)
				if debug.Bulk() {
					debug.Logf("bulk worker %d doc %d matched %t noop %t err %v\n", w, j.index, res.Matched, res.NoOp, res.Err)
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	g.Go(func() error {
		pending := map[int]Result{}
		next := 0
		for res := range results {
			pending[res.Index] = res
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := emit(p); err != nil {
					return err
				}
				next++
			}
		}
		return nil
	})
	return g.Wait()
}

// Run processes docs and returns their results in order.
func (r *Runner) Run(ctx context.Context, docs []*ir.Document) ([]Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	in := make(chan *ir.Document)
	go func() {
		defer close(in)
		for _, doc := range docs {
			select {
			case in <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()
	res := make([]Result, 0, len(docs))
	err := r.Stream(ctx, in, func(x Result) error {
		res = append(res, x)
		return nil
	})
	if err != nil {
		return nil, err
	}
	var failed, updated int
	for i := range res {
		switch {
		case res[i].Err != nil:
			failed++
		case res[i].Matched && !res[i].NoOp:
			updated++
		}
	}
	r.logger.Debug("bulk run", "docs", len(docs), "updated", updated, "failed", failed)
	return res, nil
}

func (r *Runner) process(mods []modifier.Modifier, j job) Result {
	res := Result{Index: j.index, Doc: j.doc}
	if r.filter != nil {
		ok, err := r.filter.Match(j.doc)
		if err != nil {
			res.Err = err
			return res
		}
		if !ok {
			return res
		}
	}
	res.Matched = true
	res.NoOp = true
	lb := logbuilder.New()
	for _, m := range mods {
		info, err := modifier.Run(m, j.doc.Root(), "", lb)
		if err != nil {
			res.Err = fmt.Errorf("document %d: %s %s: %w", j.index, m.Name(), m.Field(), err)
			r.logger.Debug("bulk document failed", "index", j.index, "error", res.Err)
			return res
		}
		if !info.NoOp {
			res.NoOp = false
		}
	}
	res.Log = lb
	return res
}
