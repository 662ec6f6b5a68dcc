// Package vio bundles the standard streams a shell session and its children
// share.
package vio

import (
	"io"
	"os"
)

// VIO provides the three standard streams.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// Adapter is a VIO over arbitrary readers and writers.
type Adapter struct {
	IStdin  io.ReadCloser
	IStdout io.WriteCloser
	IStderr io.WriteCloser
}

var _ VIO = (*Adapter)(nil)

// NewAdapter wraps the streams, nil streams behave like /dev/null.
func NewAdapter(stdin io.Reader, stdout, stderr io.Writer) *Adapter {
	return &Adapter{
		IStdin:  toReadCloserOrDiscard(stdin),
		IStdout: toWriteCloserOrDiscard(stdout),
		IStderr: toWriteCloserOrDiscard(stderr),
	}
}

// NewOSIO returns the process's own standard streams.
func NewOSIO() *Adapter {
	return &Adapter{
		IStdin:  os.Stdin,
		IStdout: os.Stdout,
		IStderr: os.Stderr,
	}
}

// NewNullIO creates a /dev/null style VIO: reads fail and writes are
// discarded.
func NewNullIO() VIO {
	return NewAdapter(nil, nil, nil)
}

func (a *Adapter) Stdin() io.ReadCloser {
	return a.IStdin
}

func (a *Adapter) Stdout() io.WriteCloser {
	return a.IStdout
}

func (a *Adapter) Stderr() io.WriteCloser {
	return a.IStderr
}

// File returns the *os.File behind a stream if there is one. Children that
// are handed a real file share the descriptor instead of being fed through a
// copying goroutine.
func File(stream interface{}) (*os.File, bool) {
	fd, ok := stream.(*os.File)
	return fd, ok
}

func toWriteCloserOrDiscard(w io.Writer) io.WriteCloser {
	if w == nil {
		return &devNull{}
	}
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}

func toReadCloserOrDiscard(r io.Reader) io.ReadCloser {
	if r == nil {
		return &devNull{}
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// devNull fails reads with os.ErrClosed and discards writes.
type devNull struct{}

var _ io.ReadCloser = (*devNull)(nil)
var _ io.WriteCloser = (*devNull)(nil)

func (*devNull) Read([]byte) (int, error) {
	return 0, os.ErrClosed
}

func (*devNull) Write(b []byte) (int, error) {
	return len(b), nil
}

func (*devNull) Close() error {
	return nil
}
