package orm

import "errors"

var (
	ErrPrimaryKeyNotFound  = errors.New("primary key not found")
	ErrDuplicatePrimaryKey = errors.New("duplicate primary key")
	ErrDuplicateField      = errors.New("duplicate field")
	ErrEmptyModel          = errors.New("empty model name")

	// ErrInvalidLimit возвращается FindAll, если limit не число и не пара чисел
	ErrInvalidLimit = errors.New("invalid limit value")
)
