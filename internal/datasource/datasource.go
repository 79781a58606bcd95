// Package datasource abstracts where snapshot bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source opens a readable stream of one input relation.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
