package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/born-ml/minigrad/internal/tensor"
)

const (
	metadataKey = "__metadata__"
	dtypeF64    = "F64"
	bytesPerF64 = 8
)

// elementSizes lists the readable dtypes and their width in bytes.
// Everything is upcast to float64 on load.
var elementSizes = map[string]int64{
	"F64":  8,
	"F32":  4,
	"F16":  2,
	"BF16": 2,
}

// decode converts one little-endian element of the given dtype.
func decode(dtype string, b []byte) float64 {
	switch dtype {
	case "F64":
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	case "F32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case "F16":
		return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
	case "BF16":
		// bfloat16 is the upper half of a float32.
		return float64(math.Float32frombits(uint32(binary.LittleEndian.Uint16(b)) << 16))
	}
	panic("unreachable dtype " + dtype)
}

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes tensors and optional metadata to w.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]
func WriteSafeTensors(w io.Writer, tensors map[string]*tensor.TensorData, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	slices.Sort(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}
	var offset int64
	for _, name := range names {
		t := tensors[name]
		size := int64(t.Size() * bytesPerF64)
		shape := make([]int64, t.Dims())
		for i, dim := range t.Shape() {
			shape[i] = int64(dim)
		}
		header[name] = SafeTensorHeader{
			DType:       dtypeF64,
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, name := range names {
		if err := binary.Write(w, binary.LittleEndian, tensors[name].ToSlice()); err != nil {
			return errors.Wrapf(err, "failed to write tensor %s", name)
		}
	}
	return nil
}

// ReadSafeTensors reads every tensor and the metadata of a SafeTensors
// stream. F64, F32, F16 and BF16 tensors are supported.
func ReadSafeTensors(r io.Reader) (map[string]*tensor.TensorData, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, &ValidationError{Kind: ErrHeaderTooLarge, Details: "header size exceeds limit"}
	}
	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header")
	}
	var metadata map[string]string
	metas := make([]TensorMeta, 0, len(raw))
	dtypes := make(map[string]string, len(raw))
	for name, msg := range raw {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &metadata); err != nil {
				return nil, nil, errors.Wrap(err, "failed to parse metadata")
			}
			continue
		}
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse header of tensor %s", name)
		}
		if _, ok := elementSizes[h.DType]; !ok {
			return nil, nil, &ValidationError{Kind: ErrUnsupportedDType, Tensor: name, Details: h.DType}
		}
		dtypes[name] = h.DType
		shape := make([]int, len(h.Shape))
		for i, dim := range h.Shape {
			shape[i] = int(dim)
		}
		metas = append(metas, TensorMeta{
			Name:   name,
			Shape:  shape,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}

	tensors := make(map[string]*tensor.TensorData, len(metas))
	for _, m := range metas {
		dtype := dtypes[m.Name]
		width := elementSizes[dtype]
		if m.Size%width != 0 {
			return nil, nil, &ValidationError{Kind: ErrOutOfBounds, Tensor: m.Name,
				Details: dtype + " data size is not a multiple of the element size"}
		}
		values := make([]float64, m.Size/width)
		chunk := data[m.Offset : m.Offset+m.Size]
		for i := range values {
			values[i] = decode(dtype, chunk[int64(i)*width:])
		}
		t, err := tensor.New(values, m.Shape, nil)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "tensor %s", m.Name)
		}
		tensors[m.Name] = t
	}
	return tensors, metadata, nil
}

// SaveFile writes tensors to a SafeTensors file at path.
func SaveFile(path string, tensors map[string]*tensor.TensorData, metadata map[string]string) error {
	var buf bytes.Buffer
	if err := WriteSafeTensors(&buf, tensors, metadata); err != nil {
		return err
	}
	//nolint:gosec // G306: Parameter files are not secret.
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// LoadFile reads a SafeTensors file written by SaveFile.
func LoadFile(path string) (map[string]*tensor.TensorData, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading.
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()
	return ReadSafeTensors(f)
}
