package sparse

import "errors"

// Sentinel errors for structural violations. All constructors return these
// (possibly wrapped); callers match with errors.Is.
var (
	// ErrBadShape is returned when a requested shape has a non-positive
	// dimension.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrNonSquare is returned when a square matrix is required but the
	// input is not square.
	ErrNonSquare = errors.New("sparse: matrix is not square")

	// ErrIndexOutOfRange is returned when a row or column index is outside
	// the matrix bounds.
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrBadIndptr is returned when the row pointer array is inconsistent
	// with the index/data arrays.
	ErrBadIndptr = errors.New("sparse: inconsistent row pointer array")

	// ErrDimensionMismatch is returned when two operands have incompatible
	// shapes.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNaNInf is returned when a NaN or infinite value is encountered at
	// ingestion.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")
)
