package types

import "github.com/pkg/errors"

var (
	ErrDuplicateVertex      = errors.New("duplicate vertex")
	ErrEdgeNotFound         = errors.New("edge not found")
	ErrUnsupportedDimension = errors.New("unsupported mesh dimension")
	ErrBadCellDim           = errors.New("bad cell dimension")
	ErrVertexOutOfRange     = errors.New("vertex index out of range")
	ErrCellOutOfRange       = errors.New("cell index out of range")
)
