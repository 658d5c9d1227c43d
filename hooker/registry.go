package hooker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wnxd/hookhelper/handler"
	"github.com/wnxd/hookhelper/symbol"
	"go.uber.org/zap"
)

var ErrDuplicateTarget = errors.New("duplicate hook target")

// Registry collects hook targets during initialization and installs them
// in one pass. A target is a group of alternative entries keyed by the
// first entry's symbol.
type Registry struct {
	mu      sync.RWMutex
	targets map[symbol.Name][]Entry
	order   []symbol.Name

	log *zap.Logger
	tag string
}

type Option func(*Registry)

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

func WithTag(tag string) Option {
	return func(r *Registry) {
		r.tag = tag
	}
}

// Result of a Registry.Install pass, in registration order.
type Result struct {
	Hooked []symbol.Name
	Failed []symbol.Name
}

// OK reports whether every target was hooked.
func (r Result) OK() bool {
	return len(r.Failed) == 0
}

// DefaultRegistry is the registry used by the package-level helpers.
var DefaultRegistry = NewRegistry()

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		targets: make(map[symbol.Name][]Entry),
		tag:     DefaultTag,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) logger() *zap.Logger {
	if r.log != nil {
		return r.log
	}
	return Logger()
}

// Register adds a target. alts are tried together with first, any of them
// hooking counts as success.
func (r *Registry) Register(first Entry, alts ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := first.Symbol()
	if _, ok := r.targets[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTarget, name)
	}
	r.targets[name] = append([]Entry{first}, alts...)
	r.order = append(r.order, name)

	r.logger().Debug("registered", zap.String("symbol", string(name)), zap.Int("alternatives", len(alts)))
	return nil
}

// MustRegister is Register for init functions.
func (r *Registry) MustRegister(first Entry, alts ...Entry) {
	if err := r.Register(first, alts...); err != nil {
		panic(err)
	}
}

// Install hooks every registered target. Targets already hooked are
// reported as hooked without touching h. Install passes are serialized
// since entries record their backups in place.
func (r *Registry) Install(h handler.Handler) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res Result
	for _, name := range r.order {
		group := r.targets[name]
		if hookSyms(r.logger(), r.tag, h, group[0], group[1:]...) {
			res.Hooked = append(res.Hooked, name)
		} else {
			res.Failed = append(res.Failed, name)
		}
	}
	r.logger().Debug("install finished", zap.Int("hooked", len(res.Hooked)), zap.Int("failed", len(res.Failed)))
	return res
}

func (r *Registry) Lookup(name symbol.Name) ([]Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group, ok := r.targets[name]
	return group, ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List returns the target names in registration order.
func (r *Registry) List() []symbol.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]symbol.Name(nil), r.order...)
}

func Register(first Entry, alts ...Entry) error {
	return DefaultRegistry.Register(first, alts...)
}

func MustRegister(first Entry, alts ...Entry) {
	DefaultRegistry.MustRegister(first, alts...)
}

func Install(h handler.Handler) Result {
	return DefaultRegistry.Install(h)
}
