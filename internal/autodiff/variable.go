package autodiff

import "fmt"

// Variable is a handle to a node of a Graph.
//
// A Variable's value and history never change after creation; only its
// derivative is updated, by backward passes. Variables are small values and
// can be copied freely. The zero Variable is invalid.
type Variable[V any] struct {
	graph *Graph[V]
	id    NodeID
}

func (v Variable[V]) raw() V {
	return v.graph.lookup(v).value
}

func (v Variable[V]) variable() (Variable[V], bool) {
	return v, true
}

// ID returns the node's index in its graph, unique within the graph.
func (v Variable[V]) ID() NodeID {
	return v.id
}

// Graph returns the graph owning the variable.
func (v Variable[V]) Graph() *Graph[V] {
	return v.graph
}

// Value returns the raw value.
func (v Variable[V]) Value() V {
	return v.raw()
}

// History returns how the variable was produced, or nil for leaves.
func (v Variable[V]) History() *History[V] {
	return v.graph.lookup(v).history
}

// Name returns the variable's label, defaulting to "var<id>".
func (v Variable[V]) Name() string {
	if name := v.graph.lookup(v).name; name != "" {
		return name
	}
	return fmt.Sprintf("var%d", v.id)
}

// SetName sets the variable's label.
func (v Variable[V]) SetName(name string) {
	v.graph.lookup(v).name = name
}

// IsLeaf reports whether the variable has no recorded history.
func (v Variable[V]) IsLeaf() bool {
	return v.History() == nil
}

// IsConstant reports whether the variable is a leaf that takes no gradient.
// Constants are skipped by the chain rule.
func (v Variable[V]) IsConstant() bool {
	n := v.graph.lookup(v)
	return n.history == nil && !n.requiresGrad
}

// RequiresGrad reports whether gradients flow to or through the variable.
func (v Variable[V]) RequiresGrad() bool {
	return !v.IsConstant()
}

// Derivative returns the accumulated derivative and whether one exists.
func (v Variable[V]) Derivative() (V, bool) {
	n := v.graph.lookup(v)
	return n.derivative, n.hasDeriv
}

// ZeroGrad discards the accumulated derivative.
func (v Variable[V]) ZeroGrad() {
	n := v.graph.lookup(v)
	var zero V
	n.derivative = zero
	n.hasDeriv = false
}

// Detach returns a new constant holding the same value.
func (v Variable[V]) Detach() Variable[V] {
	return v.graph.Constant(v.raw())
}

// Backward runs a backward pass from v seeded with ones (see Algebra.OnesLike).
func (v Variable[V]) Backward() error {
	return v.graph.Backward(v, v.graph.algebra.OnesLike(v.raw()))
}

// BackwardWith runs a backward pass from v with the given seed gradient.
func (v Variable[V]) BackwardWith(seed V) error {
	return v.graph.Backward(v, seed)
}

// String implements fmt.Stringer.
func (v Variable[V]) String() string {
	return fmt.Sprintf("%s(%v)", v.Name(), v.raw())
}
