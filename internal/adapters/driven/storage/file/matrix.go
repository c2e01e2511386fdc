package file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// Matrix format constants.
const (
	matrixMagic   = "DQMX"
	matrixVersion = uint16(1)

	// magic + version + rows + cols + nnz
	matrixHeaderSize = 4 + 2 + 4 + 4 + 4
)

// errMatrix is wrapped by every matrix decoding failure.
var errMatrix = errors.New("malformed matrix")

// EncodeMatrix serialises vectors as binary CSR with cols columns.
func EncodeMatrix(vectors []domain.SparseVector, cols int) ([]byte, error) {
	if uint64(cols) > math.MaxUint32 || uint64(len(vectors)) >= math.MaxUint32 {
		return nil, fmt.Errorf("matrix too large: %d rows, %d cols", len(vectors), cols)
	}

	nnz := 0
	for _, v := range vectors {
		nnz += v.NNZ()
	}
	if uint64(nnz) > math.MaxUint32 {
		return nil, fmt.Errorf("matrix too large: %d non-zero entries", nnz)
	}

	size := matrixHeaderSize + 4*(len(vectors)+1) + 4*nnz + 8*nnz
	buf := make([]byte, 0, size)

	buf = append(buf, matrixMagic...)
	buf = binary.LittleEndian.AppendUint16(buf, matrixVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vectors)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(cols))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(nnz))

	// indptr
	offset := uint32(0)
	buf = binary.LittleEndian.AppendUint32(buf, offset)
	for _, v := range vectors {
		offset += uint32(v.NNZ())
		buf = binary.LittleEndian.AppendUint32(buf, offset)
	}

	for _, v := range vectors {
		for _, col := range v.Indices {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(col))
		}
	}
	for _, v := range vectors {
		for _, x := range v.Values {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
		}
	}

	return buf, nil
}

// DecodeMatrix parses binary CSR. It returns the rows and the column count.
// Structural problems are reported as errors wrapping errMatrix.
func DecodeMatrix(data []byte) ([]domain.SparseVector, int, error) {
	if len(data) < matrixHeaderSize {
		return nil, 0, fmt.Errorf("%w: %d bytes is shorter than the header", errMatrix, len(data))
	}
	if string(data[:4]) != matrixMagic {
		return nil, 0, fmt.Errorf("%w: bad magic %q", errMatrix, data[:4])
	}

	r := bytes.NewReader(data[4:])
	var header struct {
		Version uint16
		Rows    uint32
		Cols    uint32
		NNZ     uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, 0, fmt.Errorf("%w: reading header: %v", errMatrix, err)
	}
	if header.Version != matrixVersion {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", errMatrix, header.Version)
	}

	rows, nnz := int(header.Rows), int(header.NNZ)
	want := 4*(rows+1) + 4*nnz + 8*nnz
	if r.Len() != want {
		return nil, 0, fmt.Errorf("%w: body is %d bytes, expected %d", errMatrix, r.Len(), want)
	}

	indptr := make([]uint32, rows+1)
	indices := make([]uint32, nnz)
	values := make([]float64, nnz)
	for _, dst := range []any{indptr, indices, values} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil && !errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: reading body: %v", errMatrix, err)
		}
	}

	if indptr[0] != 0 || int(indptr[rows]) != nnz {
		return nil, 0, fmt.Errorf("%w: row pointers do not span the data", errMatrix)
	}

	cols := int(header.Cols)
	vectors := make([]domain.SparseVector, rows)
	for i := 0; i < rows; i++ {
		start, end := indptr[i], indptr[i+1]
		if end < start || int(end) > nnz {
			return nil, 0, fmt.Errorf("%w: row %d has invalid bounds [%d, %d)", errMatrix, i, start, end)
		}
		vec := domain.SparseVector{Dim: cols}
		if end > start {
			vec.Indices = make([]int, end-start)
			for k, col := range indices[start:end] {
				vec.Indices[k] = int(col)
			}
			vec.Values = append([]float64(nil), values[start:end]...)
		}
		vectors[i] = vec
	}
	return vectors, cols, nil
}
