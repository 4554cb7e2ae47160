package ports

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("map record not found")
	ErrConflict = errors.New("map version conflict")
)

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
