package autodiff

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ChainRule applies the local chain-rule step of a recorded History: it
// calls the Function's Backward with dOut and pairs each non-constant input
// Variable with its gradient, in input order. Constant inputs (raw values or
// constant Variables) produce no entry.
//
// It panics if Backward returns a number of gradients different from the
// number of inputs.
func (g *Graph[V]) ChainRule(h *History[V], dOut V) []VarGrad[V] {
	grads := h.Fn.Backward(h.Ctx, dOut)
	if len(grads) != len(h.Inputs) {
		exceptions.Panicf("%s.Backward returned %d gradients for %d inputs", h.Fn.Name(), len(grads), len(h.Inputs))
	}

	result := make([]VarGrad[V], 0, len(grads))
	for i, in := range h.Inputs {
		if !in.IsVariable() {
			continue
		}
		v := Variable[V]{graph: g, id: in.ID}
		if v.IsConstant() {
			continue
		}
		result = append(result, VarGrad[V]{Variable: v, Grad: grads[i]})
	}
	return result
}

// TopologicalOrder returns the non-constant variables reachable from root,
// each exactly once, ordered so that every variable comes before all the
// variables it was computed from. Root is first.
//
// The order is the reverse post-order of a depth-first traversal from root.
func (g *Graph[V]) TopologicalOrder(root Variable[V]) []Variable[V] {
	g.lookup(root)

	type frame struct {
		id   NodeID
		done bool // Children already pushed: emit on pop
	}
	visited := make([]bool, len(g.nodes))
	postOrder := make([]NodeID, 0, len(g.nodes))
	stack := []frame{{id: root.id}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.done {
			postOrder = append(postOrder, f.id)
			continue
		}
		if visited[f.id] {
			continue
		}
		visited[f.id] = true
		stack = append(stack, frame{id: f.id, done: true})

		h := g.nodes[f.id].history
		if h == nil {
			continue
		}
		for i := len(h.Inputs) - 1; i >= 0; i-- {
			in := h.Inputs[i]
			if !in.IsVariable() || visited[in.ID] {
				continue
			}
			if n := g.nodes[in.ID]; n.history == nil && !n.requiresGrad {
				continue // Constant
			}
			stack = append(stack, frame{id: in.ID})
		}
	}

	order := make([]Variable[V], len(postOrder))
	for i, id := range postOrder {
		order[len(postOrder)-1-i] = Variable[V]{graph: g, id: id}
	}
	return order
}

// Backward runs reverse-mode differentiation from root.
//
// Algorithm:
//  1. Order the variables reachable from root topologically (consumers first)
//  2. Seed root's gradient with seed
//  3. For each variable with a history, apply ChainRule to its total
//     accumulated gradient and add the results into its parents' gradients
//  4. Add the final gradients into the derivative of every leaf
//
// Leaf derivatives are summed across passes until ZeroGrad. The seed must
// be compatible with root's value (see Algebra.Compatible), and so must every
// gradient a Function returns. If any check fails or any Function panics
// during the pass, Backward returns the error and no leaf derivative is
// modified.
func (g *Graph[V]) Backward(root Variable[V], seed V) error {
	var staged map[NodeID]V
	var order []Variable[V]
	err := catch(func() {
		n := g.lookup(root)
		if err := g.algebra.Compatible(n.value, seed); err != nil {
			panic(errors.WithMessage(err, "seed"))
		}
		order = g.TopologicalOrder(root)
		staged = g.stage(order, g.propagate(order, seed))
	})
	if err != nil {
		return errors.WithMessagef(err, "backward from %s in %v", root.Name(), g)
	}

	if klog.V(2).Enabled() {
		klog.Infof("backward: %v root=%s visited %d nodes", g, root.Name(), len(order))
	}
	for id, d := range staged {
		n := &g.nodes[id]
		n.derivative = d
		n.hasDeriv = true
	}
	return nil
}

// stage computes the new derivative (previous derivative + gradient) of
// every non-constant leaf in order, without modifying the graph.
func (g *Graph[V]) stage(order []Variable[V], grads map[NodeID]V) map[NodeID]V {
	staged := make(map[NodeID]V)
	for _, v := range order {
		n := &g.nodes[v.id]
		if n.history != nil || !n.requiresGrad {
			continue
		}
		d, ok := grads[v.id]
		if !ok {
			continue
		}
		if n.hasDeriv {
			d = g.algebra.Add(n.derivative, d)
		}
		staged[v.id] = d
	}
	return staged
}

// propagate pushes gradients through order, returning the total gradient
// of every visited variable.
func (g *Graph[V]) propagate(order []Variable[V], seed V) map[NodeID]V {
	grads := make(map[NodeID]V, len(order))
	grads[order[0].id] = seed

	for _, v := range order {
		h := g.nodes[v.id].history
		if h == nil {
			continue
		}
		dOut, ok := grads[v.id]
		if !ok {
			// Every non-root variable in order is reachable through a consumer
			// processed before it.
			exceptions.Panicf("no gradient reached %s", v.Name())
		}
		klog.V(3).Infof("backward: %s via %s", v.Name(), h.Fn.Name())
		for _, vg := range g.ChainRule(h, dOut) {
			if err := g.algebra.Compatible(g.nodes[vg.Variable.id].value, vg.Grad); err != nil {
				panic(errors.WithMessagef(err, "gradient of %s from %s", vg.Variable.Name(), h.Fn.Name()))
			}
			if prev, ok := grads[vg.Variable.id]; ok {
				grads[vg.Variable.id] = g.algebra.Add(prev, vg.Grad)
			} else {
				grads[vg.Variable.id] = vg.Grad
			}
		}
	}
	return grads
}
