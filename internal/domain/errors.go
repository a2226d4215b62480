package domain

import "errors"

var (
	ErrStoreUnreachable    = errors.New("store unreachable")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrSeedCanceled        = errors.New("seed canceled")
)
