package autodiff

// Function is a differentiable operation over raw values of type V.
//
// Implementations are stateless: everything Backward needs must be saved in
// the Context during Forward. Backward returns one gradient per input, in
// the same order as the inputs of Forward.
//
// Example for an addition:
//
//	Forward(ctx, a, b) = a + b
//	Backward(ctx, d)   = [d, d]
type Function[V any] interface {
	// Name identifies the function in error messages and logs.
	Name() string

	// Forward computes the output value from the raw input values.
	Forward(ctx *Context, inputs ...V) V

	// Backward computes the gradient of each input given the gradient of
	// the output.
	Backward(ctx *Context, dOut V) []V
}

// Operand is an argument to Apply: either a Variable or a raw constant.
type Operand[V any] interface {
	raw() V
	variable() (Variable[V], bool)
}

// Const wraps a raw value as a constant Operand.
func Const[V any](v V) Operand[V] {
	return constant[V]{value: v}
}

type constant[V any] struct {
	value V
}

func (c constant[V]) raw() V {
	return c.value
}

func (c constant[V]) variable() (Variable[V], bool) {
	return Variable[V]{}, false
}

// Input is one recorded input of a History: a graph node or a raw constant.
type Input[V any] struct {
	ID       NodeID // Valid only if IsVariable
	Value    V      // Raw value at the time of the call
	Variable bool
}

// IsVariable reports whether the input refers to a graph node.
func (in Input[V]) IsVariable() bool {
	return in.Variable
}

// History records how a non-leaf Variable was produced.
type History[V any] struct {
	Fn     Function[V]
	Ctx    *Context
	Inputs []Input[V]
}

// VarGrad pairs a Variable with one gradient contribution.
type VarGrad[V any] struct {
	Variable Variable[V]
	Grad     V
}
