package tensor

// Storage is the flat float64 buffer behind a TensorData.
//
// A Storage is shared by reference between a tensor and every view created
// from it with Permute or View: writes through one view are visible through
// all the others.
type Storage struct {
	data  []float64
	views int // Number of TensorData referencing this buffer
}

// newStorage wraps data without copying it.
func newStorage(data []float64) *Storage {
	return &Storage{data: data}
}

// addRef records one more TensorData referencing the buffer.
func (s *Storage) addRef() {
	s.views++
}

// Len returns the number of elements in the buffer.
func (s *Storage) Len() int {
	return len(s.data)
}

// Data returns the underlying slice. Mutations are visible to all views.
func (s *Storage) Data() []float64 {
	return s.data
}

// IsShared returns true if more than one TensorData references the buffer.
func (s *Storage) IsShared() bool {
	return s.views > 1
}
