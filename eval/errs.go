package eval

import "errors"

var (
	ErrEval = errors.New("eval error")

	errInternal = errors.New("internal error")
)
