package strata

import (
	"io"

	"github.com/parquet-go/parquet-go"
)

// partitionWriter buffers records and writes them to a parquet file in
// row groups of bufferSize rows. Close flushes the remaining buffer and
// writes the file footer; nothing is valid until then, which is why it runs
// before the atomic publish.
type partitionWriter[T any] struct {
	w    *parquet.GenericWriter[T]
	buf  []T
	size int
}

func newPartitionWriter[T any](dst io.Writer, bufferSize int) *partitionWriter[T] {
	return &partitionWriter[T]{
		w:    parquet.NewGenericWriter[T](dst),
		buf:  make([]T, 0, bufferSize),
		size: bufferSize,
	}
}

func (pw *partitionWriter[T]) Append(records []T) error {
	pw.buf = append(pw.buf, records...)
	if len(pw.buf) >= pw.size {
		return pw.flush()
	}
	return nil
}

func (pw *partitionWriter[T]) flush() error {
	if len(pw.buf) == 0 {
		return nil
	}
	if _, err := pw.w.Write(pw.buf); err != nil {
		return err
	}
	pw.buf = pw.buf[:0]
	return pw.w.Flush()
}

func (pw *partitionWriter[T]) Close() error {
	if err := pw.flush(); err != nil {
		return err
	}
	return pw.w.Close()
}
