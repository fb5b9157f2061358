// Package serialization saves and loads named float64 tensors in the
// SafeTensors format:
//
//	[8 bytes: header size (uint64 LE)]
//	[header: JSON {name: {dtype, shape, data_offsets}, "__metadata__": {...}}]
//	[tensor data: raw little-endian bytes]
//
// Tensors are written in alphabetical order by name, always as F64 with
// their row-major (contiguous) layout. Reading also accepts F32, F16 and
// BF16 files, upcasting every element to float64. It is used to
// checkpoint optimizer parameters.
//
// Example usage:
//
//	err := serialization.SaveFile("params.safetensors", map[string]*tensor.TensorData{"w": w}, nil)
//	params, meta, err := serialization.LoadFile("params.safetensors")
package serialization
