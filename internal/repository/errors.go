package repository

import "errors"

// ErrStockConflict is returned when a conditional stock decrement matched no row.
var ErrStockConflict = errors.New("stock changed concurrently")
