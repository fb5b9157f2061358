package tensor

// Map applies fn to every element of in. The result is contiguous and has
// the same shape as in.
func Map(fn func(float64) float64, in *TensorData) *TensorData {
	out := Zeros(in.shape)
	outData := out.storage.data
	i := 0
	for index := range in.Indices() {
		outData[i] = fn(in.At(index))
		i++
	}
	return out
}

// Zip combines a and b element by element, broadcasting both to their
// union shape.
//
// Example:
//
//	a[3,1] + b[4] → out[3,4]
func Zip(fn func(float64, float64) float64, a, b *TensorData) (*TensorData, error) {
	outShape, err := ShapeBroadcast(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	out := Zeros(outShape)
	outData := out.storage.data

	aIndex := make([]int, len(a.shape))
	bIndex := make([]int, len(b.shape))
	i := 0
	for index := range out.Indices() {
		BroadcastIndex(index, outShape, a.shape, aIndex)
		BroadcastIndex(index, outShape, b.shape, bIndex)
		outData[i] = fn(a.At(aIndex), b.At(bIndex))
		i++
	}
	return out, nil
}

// BroadcastTo expands a to shape, which must be a broadcast of a's shape.
func BroadcastTo(a *TensorData, shape Shape) (*TensorData, error) {
	union, err := ShapeBroadcast(a.shape, shape)
	if err != nil {
		return nil, err
	}
	if !union.Equal(shape) {
		return nil, newIndexingError(ErrBroadcast, "cannot expand %v to %v", a.shape, shape)
	}
	out := Zeros(shape)
	outData := out.storage.data
	aIndex := make([]int, len(a.shape))
	i := 0
	for index := range out.Indices() {
		BroadcastIndex(index, shape, a.shape, aIndex)
		outData[i] = a.At(aIndex)
		i++
	}
	return out, nil
}

// ReduceDim folds dimension dim of a with fn, starting from start. The
// result keeps the rank of a with size 1 along dim.
func ReduceDim(fn func(acc, x float64) float64, start float64, a *TensorData, dim int) (*TensorData, error) {
	if dim < 0 || dim >= len(a.shape) {
		return nil, newIndexingError(ErrIndexOutOfRange, "reduce dimension %d invalid for shape %v", dim, a.shape)
	}
	outShape := a.shape.Clone()
	outShape[dim] = 1
	out := Full(outShape, start)
	outData := out.storage.data

	for index := range a.Indices() {
		pos := 0
		for d, ind := range index {
			if d != dim {
				pos += ind * out.strides[d]
			}
		}
		outData[pos] = fn(outData[pos], a.At(index))
	}
	return out, nil
}

// SumTo reduces a broadcast tensor back to shape by summing over the
// broadcast dimensions. This is the adjoint of BroadcastTo and is used to
// bring gradients of broadcast operands back to the operand's shape.
//
// Example:
//
//	Forward:  a[3,1] + b[3,4] → c[3,4]
//	Backward: grad_c[3,4] → SumTo(grad_c, [3,1]) → grad_a[3,1]
func SumTo(a *TensorData, shape Shape) (*TensorData, error) {
	if a.shape.Equal(shape) {
		return a.Contiguous(), nil
	}
	union, err := ShapeBroadcast(shape, a.shape)
	if err != nil {
		return nil, err
	}
	if !union.Equal(a.shape) {
		return nil, newIndexingError(ErrBroadcast, "cannot sum %v down to %v", a.shape, shape)
	}

	out := Zeros(shape)
	outData := out.storage.data
	outIndex := make([]int, len(shape))
	for index := range a.Indices() {
		BroadcastIndex(index, a.shape, shape, outIndex)
		outData[IndexToPosition(outIndex, out.strides)] += a.At(index)
	}
	return out, nil
}
