package screen

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Policy decides what a batch does when some of its fetches fail
type Policy int

const (
	// AllOrNothing discards every result if any fetch fails.
	AllOrNothing Policy = iota
	// PartialSuccess keeps the results of the fetches that succeeded.
	PartialSuccess
)

// ParsePolicy maps the configuration value to a Policy
func ParsePolicy(s string) Policy {
	if s == "partial" {
		return PartialSuccess
	}
	return AllOrNothing
}

func (p Policy) String() string {
	if p == PartialSuccess {
		return "partial"
	}
	return "all_or_nothing"
}

// Fetch is one named request in a batch. Run performs the request and
// returns a commit func that stores the result into screen state; commits
// are applied by the controller only if the policy allows it.
type Fetch struct {
	Name string
	Run  func(ctx context.Context, token string) (commit func(), err error)
}

// Collect builds a Fetch from a typed getter and a setter.
func Collect[T any](name string, get func(ctx context.Context, token string) (T, error), set func(T)) Fetch {
	return Fetch{
		Name: name,
		Run: func(ctx context.Context, token string) (func(), error) {
			v, err := get(ctx, token)
			if err != nil {
				return nil, err
			}
			return func() { set(v) }, nil
		},
	}
}

// Outcome of a settled batch
type Outcome struct {
	// Commits holds the commit funcs the policy allows, keyed by fetch name.
	Commits map[string]func()
	// Errors holds each failed fetch's error. Siblings cut off because of
	// an earlier failure are not listed.
	Errors map[string]error

	order []string
}

// Failed reports whether any fetch failed
func (o Outcome) Failed() bool {
	return len(o.Errors) > 0
}

// FailedNames returns the failing fetch names, sorted
func (o Outcome) FailedNames() []string {
	names := make([]string, 0, len(o.Errors))
	for n := range o.Errors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FirstError returns the error of the fetch that failed first
func (o Outcome) FirstError() error {
	if len(o.order) == 0 {
		return nil
	}
	return o.Errors[o.order[0]]
}

// RunBatch issues every fetch concurrently and returns once all have settled.
func RunBatch(ctx context.Context, token string, fetches []Fetch, policy Policy) Outcome {
	out := Outcome{
		Commits: make(map[string]func(), len(fetches)),
		Errors:  make(map[string]error),
	}
	var mu sync.Mutex

	g := &errgroup.Group{}
	runCtx := ctx
	if policy == AllOrNothing {
		// the first failure dooms the batch; stop the rest early
		g, runCtx = errgroup.WithContext(ctx)
	}

	for _, f := range fetches {
		f := f
		g.Go(func() error {
			commit, err := f.Run(runCtx, token)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// once the batch is doomed, sibling errors are fallout of the cancel
				if ctx.Err() == nil && runCtx.Err() != nil && (len(out.order) > 0 || errors.Is(err, context.Canceled)) {
					return err
				}
				out.Errors[f.Name] = err
				out.order = append(out.order, f.Name)
				return err
			}
			out.Commits[f.Name] = commit
			return nil
		})
	}
	_ = g.Wait()

	if policy == AllOrNothing && out.Failed() {
		out.Commits = map[string]func(){}
	}
	return out
}
