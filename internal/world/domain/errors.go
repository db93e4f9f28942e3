package domain

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodeOutOfBounds  Code = "MAP_OUT_OF_BOUNDS"
	CodeCellOccupied Code = "MAP_CELL_OCCUPIED"
	CodeInvalidGrid  Code = "MAP_INVALID_GRID"
)

type Error = errx.Error

var (
	ErrOutOfBounds  = errx.NewBiz(CodeOutOfBounds, "out of bounds")
	ErrCellOccupied = errx.NewBiz(CodeCellOccupied, "cell occupied")
	ErrInvalidGrid  = errx.NewBiz(CodeInvalidGrid, "invalid grid size")
)

const CodeSnapshotNotFound Code = "MAP_SNAPSHOT_NOT_FOUND"

var ErrSnapshotNotFound = errx.NewBiz(CodeSnapshotNotFound, "terrain snapshot not found")
