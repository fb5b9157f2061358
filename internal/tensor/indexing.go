package tensor

// IndexToPosition converts a multidimensional index into a flat storage
// position: the dot product of index and strides.
func IndexToPosition(index []int, strides Strides) int {
	position := 0
	for i, ind := range index {
		position += ind * strides[i]
	}
	return position
}

// Count converts a flat position into a multi-index of shape, writing it to
// outIndex. Enumerating position 0..size-1 visits every index of shape
// exactly once (row-major order). It is not the inverse of IndexToPosition
// for non-canonical strides.
func Count(position int, shape Shape, outIndex []int) {
	cur := position
	for i := len(shape) - 1; i >= 0; i-- {
		sh := shape[i]
		outIndex[i] = cur % sh
		cur /= sh
	}
}

// BroadcastIndex maps bigIndex (an index into the broadcast shape bigShape)
// down to outIndex, an index into the smaller shape. Shapes are aligned at
// the right; dimensions of size 1 in shape collapse to index 0.
func BroadcastIndex(bigIndex []int, bigShape, shape Shape, outIndex []int) {
	offset := len(bigShape) - len(shape)
	for i, s := range shape {
		if s > 1 {
			outIndex[i] = bigIndex[i+offset]
		} else {
			outIndex[i] = 0
		}
	}
}
