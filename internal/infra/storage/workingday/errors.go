package workingday

import "errors"

var (
	ErrBuildQuery = errors.New("workingday.repository: failed to build query")
	ErrExecQuery  = errors.New("workingday.repository: failed to execute query")
	ErrScanRow    = errors.New("workingday.repository: failed to scan row")
)
