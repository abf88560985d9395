package eval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"noirpad/internal/expr"
)

// ErrNoEvaluator is reported when evaluation is requested but no evaluator
// backend is configured.
var ErrNoEvaluator = errors.New("no evaluator configured")

// Orchestrator mediates between input fields and the Evaluator. It owns the
// two concerns the presenter explicitly does not: supersession (a newer
// request for a field always wins over an older one, regardless of
// completion order) and dedup of identical in-flight expressions.
type Orchestrator struct {
	evaluator Evaluator
	timeout   time.Duration // 0 means unbounded
	logger    *zap.Logger
	notify    func(field string, r Result)
	group     singleflight.Group

	mu      sync.Mutex
	seq     map[string]uint64
	results map[string]Result

	wg sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout bounds each evaluation request. Zero keeps requests unbounded,
// matching the playground's historical behavior.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithNotify registers a callback invoked whenever a field's Result
// changes. Called from evaluation goroutines; the callback must be safe to
// invoke concurrently.
func WithNotify(fn func(field string, r Result)) Option {
	return func(o *Orchestrator) { o.notify = fn }
}

// NewOrchestrator creates an orchestrator over the given evaluator. A nil
// evaluator is allowed; expression fields then fail with ErrNoEvaluator.
func NewOrchestrator(evaluator Evaluator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		evaluator: evaluator,
		logger:    zap.NewNop(),
		seq:       make(map[string]uint64),
		results:   make(map[string]Result),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit registers a new text for a field and, when the text classifies as
// a complete expression, starts an asynchronous evaluation. Literal and
// partial texts reset the field to Idle without touching the evaluator.
// Any still-running older request for the same field is superseded: its
// completion is dropped when it eventually arrives.
func (o *Orchestrator) Submit(ctx context.Context, field, text string, inputs Inputs) {
	analysis := expr.Analyze(text)

	o.mu.Lock()
	o.seq[field]++
	seq := o.seq[field]

	if !analysis.IsExpression || analysis.IsPartial {
		o.results[field] = Idle()
		o.mu.Unlock()
		o.publish(field, Idle())
		return
	}

	o.results[field] = Evaluating()
	o.mu.Unlock()
	o.publish(field, Evaluating())

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(ctx, field, seq, text, inputs)
	}()
}

func (o *Orchestrator) run(ctx context.Context, field string, seq uint64, text string, inputs Inputs) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	started := time.Now()
	value, err, _ := o.group.Do(requestKey(text, inputs), func() (interface{}, error) {
		if o.evaluator == nil {
			return "", ErrNoEvaluator
		}
		return o.evaluator.Evaluate(ctx, text, inputs)
	})

	var result Result
	if err != nil {
		result = Failed(err)
		o.logger.Debug("evaluation failed",
			zap.String("field", field),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(started)))
	} else {
		result = Complete(value.(string))
		o.logger.Debug("evaluation complete",
			zap.String("field", field),
			zap.Duration("elapsed", time.Since(started)))
	}

	o.mu.Lock()
	if o.seq[field] != seq {
		// A newer Submit for this field won the race; drop this outcome.
		o.mu.Unlock()
		return
	}
	o.results[field] = result
	o.mu.Unlock()

	o.publish(field, result)
}

// Result returns the current result for a field, Idle if never submitted.
func (o *Orchestrator) Result(field string) Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	if r, ok := o.results[field]; ok {
		return r
	}
	return Idle()
}

// Wait blocks until all in-flight evaluations have settled. Used at
// shutdown and by tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) publish(field string, r Result) {
	if o.notify != nil {
		o.notify(field, r)
	}
}

// requestKey canonicalizes an expression plus its visible inputs for
// singleflight dedup. Input order must not matter.
func requestKey(text string, inputs Inputs) string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(text)
	for _, name := range names {
		fmt.Fprintf(&b, "\x00%s=%s", name, inputs[name])
	}
	return b.String()
}
