package serialization_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/minigrad/internal/serialization"
	"github.com/born-ml/minigrad/internal/tensor"
)

func TestSafeTensors_RoundTrip(t *testing.T) {
	w := must.M1(tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}))
	wt := must.M1(w.Permute(1, 0)) // Non-contiguous: written row-major
	b := tensor.Scalar(-0.5)

	var buf bytes.Buffer
	require.NoError(t, serialization.WriteSafeTensors(&buf,
		map[string]*tensor.TensorData{"w": wt, "b": b},
		map[string]string{"step": "10"}))

	got, meta, err := serialization.ReadSafeTensors(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"step": "10"}, meta)
	require.Len(t, got, 2)
	assert.Equal(t, tensor.Shape{3, 2}, got["w"].Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got["w"].ToSlice())
	assert.Equal(t, 0, got["b"].Dims())
	assert.Equal(t, -0.5, got["b"].Item())
}

func TestSafeTensors_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.safetensors")
	x := must.M1(tensor.FromSlice([]float64{3, 1, 4}, tensor.Shape{3}))
	require.NoError(t, serialization.SaveFile(path, map[string]*tensor.TensorData{"x": x}, nil))

	got, meta, err := serialization.LoadFile(path)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, []float64{3, 1, 4}, got["x"].ToSlice())

	_, _, err = serialization.LoadFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestSafeTensors_InvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := serialization.WriteSafeTensors(&buf, map[string]*tensor.TensorData{"__x": tensor.Scalar(1)}, nil)
	assert.True(t, errors.Is(err, serialization.ErrInvalidTensorName))
}

// rawFile builds a file with the given JSON header and data section.
func rawFile(header string, data []byte) *bytes.Buffer {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return &buf
}

func TestReadSafeTensors_Validation(t *testing.T) {
	tests := []struct {
		name   string
		header string
		data   []byte
		want   error
	}{
		{
			"out of bounds",
			`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}}`,
			make([]byte, 8),
			serialization.ErrOutOfBounds,
		},
		{
			"overlap",
			`{"a":{"dtype":"F64","shape":[1],"data_offsets":[0,8]},"b":{"dtype":"F64","shape":[1],"data_offsets":[4,12]}}`,
			make([]byte, 16),
			serialization.ErrOffsetOverlap,
		},
		{
			"negative",
			`{"a":{"dtype":"F64","shape":[1],"data_offsets":[8,0]}}`,
			make([]byte, 8),
			serialization.ErrNegativeOffset,
		},
		{
			"dtype",
			`{"a":{"dtype":"I32","shape":[1],"data_offsets":[0,4]}}`,
			make([]byte, 4),
			serialization.ErrUnsupportedDType,
		},
		{
			"partial element",
			`{"a":{"dtype":"F32","shape":[1],"data_offsets":[0,3]}}`,
			make([]byte, 3),
			serialization.ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := serialization.ReadSafeTensors(rawFile(tt.header, tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestReadSafeTensors_ShapeMismatch(t *testing.T) {
	header := `{"a":{"dtype":"F64","shape":[3],"data_offsets":[0,16]}}`
	_, _, err := serialization.ReadSafeTensors(rawFile(header, make([]byte, 16)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrStorageSize))
}

func TestReadSafeTensors_HeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(serialization.MaxHeaderSize+1))
	_, _, err := serialization.ReadSafeTensors(&buf)
	assert.True(t, errors.Is(err, serialization.ErrHeaderTooLarge))
}

func TestReadSafeTensors_ReducedPrecision(t *testing.T) {
	var data []byte
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(1.5))
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(-2))
	data = binary.LittleEndian.AppendUint16(data, float16.Fromfloat32(0.25).Bits())
	data = binary.LittleEndian.AppendUint16(data, uint16(math.Float32bits(-3)>>16)) // BF16

	header := `{"f32":{"dtype":"F32","shape":[2],"data_offsets":[0,8]},` +
		`"f16":{"dtype":"F16","shape":[],"data_offsets":[8,10]},` +
		`"bf16":{"dtype":"BF16","shape":[1],"data_offsets":[10,12]}}`
	got, _, err := serialization.ReadSafeTensors(rawFile(header, data))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2}, got["f32"].ToSlice())
	assert.Equal(t, 0.25, got["f16"].Item())
	assert.Equal(t, []float64{-3}, got["bf16"].ToSlice())
}
