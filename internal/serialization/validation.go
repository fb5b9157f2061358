package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// TensorMeta locates one tensor inside the data section.
type TensorMeta struct {
	Name   string
	Shape  []int
	Offset int64 // Byte offset from the start of the data section
	Size   int64 // Size in bytes
}

// ValidateTensorName rejects empty, oversized or reserved names.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Kind: ErrInvalidTensorName, Details: "empty name"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{Kind: ErrInvalidTensorName, Tensor: name[:32] + "...",
			Details: fmt.Sprintf("length %d, max %d", len(name), MaxTensorNameLen)}
	case strings.HasPrefix(name, "__"):
		return &ValidationError{Kind: ErrInvalidTensorName, Tensor: name, Details: "names starting with __ are reserved"}
	}
	return nil
}

// ValidateTensorOffsets checks for overlapping tensor offsets and
// out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Kind:    ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := slices.Clone(tensors)
	slices.SortFunc(sorted, func(a, b TensorMeta) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Kind:    ErrNegativeOffset,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}
		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Kind:    ErrOutOfBounds,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d + size=%d > data size %d", t.Offset, t.Size, dataSize),
			}
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Offset+prev.Size > t.Offset {
				return &ValidationError{
					Kind:    ErrOffsetOverlap,
					Tensor:  prev.Name,
					Tensor2: t.Name,
					Details: fmt.Sprintf("[%d, %d) overlaps [%d, %d)", prev.Offset, prev.Offset+prev.Size, t.Offset, t.Offset+t.Size),
				}
			}
		}
	}
	return nil
}
