package autodiff

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NodeID indexes a node in its Graph's arena.
type NodeID int

// ErrIncompatibleGradient is matched (via errors.Is) when a seed or a
// gradient does not fit the value it belongs to.
var ErrIncompatibleGradient = errors.New("incompatible gradient")

// Algebra provides the value-type specific operations the backward engine
// needs to accumulate gradients.
type Algebra[V any] interface {
	// Add returns a + b. It must not modify its arguments.
	Add(a, b V) V

	// OnesLike returns the default seed gradient for a root holding v.
	OnesLike(v V) V

	// Compatible returns an error wrapping ErrIncompatibleGradient if grad
	// cannot be the gradient of value (e.g. a different shape).
	Compatible(value, grad V) error
}

// Graph is an arena owning every Variable of one computation.
//
// Nodes reference their parents by NodeID, never by pointer, and are only
// ever appended: a node's inputs always have smaller ids than the node.
// A Graph is not safe for concurrent use.
//
// Usage:
//
//	g := autodiff.NewGraph[float64](alg)
//	x := g.Leaf(2.0)
//	y := g.Apply(mul, x, x)
//	err := y.Backward()
//	dx, _ := x.Derivative() // 4.0
type Graph[V any] struct {
	id        uuid.UUID
	algebra   Algebra[V]
	nodes     []node[V]
	recording bool
}

type node[V any] struct {
	value        V
	history      *History[V]
	derivative   V
	hasDeriv     bool
	requiresGrad bool
	name         string
}

// NewGraph creates an empty graph that records operations.
func NewGraph[V any](algebra Algebra[V]) *Graph[V] {
	return &Graph[V]{
		id:        uuid.New(),
		algebra:   algebra,
		nodes:     make([]node[V], 0, 64), // Pre-allocate for common case
		recording: true,
	}
}

// ID returns the graph's unique id.
func (g *Graph[V]) ID() uuid.UUID {
	return g.id
}

// Len returns the number of nodes in the arena.
func (g *Graph[V]) Len() int {
	return len(g.nodes)
}

// String implements fmt.Stringer.
func (g *Graph[V]) String() string {
	return fmt.Sprintf("Graph(%s, %d nodes)", g.id, len(g.nodes))
}

// StartRecording enables history recording (the default).
func (g *Graph[V]) StartRecording() {
	g.recording = true
}

// StopRecording disables history recording: results of Apply become
// constants until StartRecording is called.
func (g *Graph[V]) StopRecording() {
	g.recording = false
}

// IsRecording returns true if the graph records the history of new values.
func (g *Graph[V]) IsRecording() bool {
	return g.recording
}

// Clear drops every node. All Variables previously created on g become
// invalid. Recording state is preserved.
func (g *Graph[V]) Clear() {
	g.nodes = g.nodes[:0]
}

// LeafOption configures a leaf created with Graph.Leaf.
type LeafOption func(*leafConfig)

type leafConfig struct {
	name         string
	requiresGrad bool
}

// WithName sets the label of the leaf.
func WithName(name string) LeafOption {
	return func(c *leafConfig) {
		c.name = name
	}
}

// WithRequiresGrad sets whether the leaf accumulates a derivative.
func WithRequiresGrad(requiresGrad bool) LeafOption {
	return func(c *leafConfig) {
		c.requiresGrad = requiresGrad
	}
}

// Leaf creates a leaf Variable. By default it requires a gradient.
func (g *Graph[V]) Leaf(value V, opts ...LeafOption) Variable[V] {
	cfg := leafConfig{requiresGrad: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return g.push(node[V]{value: value, requiresGrad: cfg.requiresGrad, name: cfg.name})
}

// Constant creates a leaf that never receives a gradient.
func (g *Graph[V]) Constant(value V) Variable[V] {
	return g.Leaf(value, WithRequiresGrad(false))
}

func (g *Graph[V]) push(n node[V]) Variable[V] {
	g.nodes = append(g.nodes, n)
	return Variable[V]{graph: g, id: NodeID(len(g.nodes) - 1)}
}

// lookup returns the arena entry of v, panicking on foreign or stale handles.
func (g *Graph[V]) lookup(v Variable[V]) *node[V] {
	if v.graph != g {
		exceptions.Panicf("variable #%d belongs to %v, not to %v", v.id, v.graph, g)
	}
	if int(v.id) < 0 || int(v.id) >= len(g.nodes) {
		exceptions.Panicf("variable #%d is not in %v (was the graph cleared?)", v.id, g)
	}
	return &g.nodes[v.id]
}

// Apply runs fn forward on the raw values of args and returns the result as
// a new Variable.
//
// If any argument requires a gradient and the graph is recording, the
// result records a History referencing fn, the call's Context and the
// original arguments in call order. Otherwise the result is a constant.
// Apply panics if a Variable argument belongs to another graph.
func (g *Graph[V]) Apply(fn Function[V], args ...Operand[V]) Variable[V] {
	raws := make([]V, len(args))
	inputs := make([]Input[V], len(args))
	needGrad := false
	for i, arg := range args {
		raws[i] = arg.raw()
		inputs[i] = Input[V]{Value: raws[i]}
		if v, ok := arg.variable(); ok {
			n := g.lookup(v)
			inputs[i].ID = v.id
			inputs[i].Variable = true
			if n.history != nil || n.requiresGrad {
				needGrad = true
			}
		}
	}
	needGrad = needGrad && g.recording

	ctx := NewContext(!needGrad)
	out := fn.Forward(ctx, raws...)
	ctx.Seal()

	if !needGrad {
		return g.push(node[V]{value: out})
	}
	return g.push(node[V]{
		value:        out,
		requiresGrad: true,
		history:      &History[V]{Fn: fn, Ctx: ctx, Inputs: inputs},
	})
}

// TryApply is like Apply but returns panics raised by fn (e.g. shape
// mismatches) as errors.
func (g *Graph[V]) TryApply(fn Function[V], args ...Operand[V]) (v Variable[V], err error) {
	err = catch(func() { v = g.Apply(fn, args...) })
	if err != nil {
		return Variable[V]{}, errors.WithMessagef(err, "%s", fn.Name())
	}
	return v, nil
}

// catch runs fn, converting any panic into an error.
func catch(fn func()) error {
	exception := exceptions.Try(fn)
	if exception == nil {
		return nil
	}
	if err, ok := exception.(error); ok {
		return err
	}
	return errors.Errorf("%v", exception)
}
