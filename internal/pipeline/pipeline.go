// Package pipeline models a request-handling operation as an ordered list of
// guard steps followed by a single terminal handler. The first failing step
// aborts the run and the terminal handler never executes.
package pipeline

import "context"

// Request is the per-request handle threaded through one pipeline run. It
// carries the path identifier and, once an existence guard has resolved it,
// the stored record. A Request is built fresh for every run and never shared.
type Request[R any] struct {
	// ID is the identifier from the request path, empty for create and list.
	ID string
	// Resource is the stored record resolved by an existence guard.
	Resource R
}

// Step is a single guard over a candidate payload. It reads the payload and
// the request handle and either passes (nil) or aborts the run with a typed
// error. A lookup step may set req.Resource for downstream steps.
type Step[P, R any] func(ctx context.Context, req *Request[R], payload P) *Error

// Terminal is the mutation or read that runs after every step has passed.
type Terminal[P, R any] func(ctx context.Context, req *Request[R], payload P) (R, error)

// Pipeline is the composed operation. Build it once per operation and reuse
// it across requests.
type Pipeline[P, R any] struct {
	steps    []Step[P, R]
	terminal Terminal[P, R]
}

// New composes steps and a terminal handler into a Pipeline.
func New[P, R any](terminal Terminal[P, R], steps ...Step[P, R]) Pipeline[P, R] {
	return Pipeline[P, R]{steps: steps, terminal: terminal}
}

// Run executes the steps in order. The first step that fails short-circuits
// the run and its error is returned; otherwise the terminal handler runs
// exactly once.
func (p Pipeline[P, R]) Run(ctx context.Context, req *Request[R], payload P) (R, error) {
	for _, step := range p.steps {
		if err := step(ctx, req, payload); err != nil {
			var zero R
			return zero, err
		}
	}
	return p.terminal(ctx, req, payload)
}
