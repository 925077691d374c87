package transfer

import "io"

// LazyWriteCloser delays opening its destination until the first write, so a
// failed export never leaves an empty file behind.
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		var err error
		f.writer, err = f.init()
		if err != nil {
			return 0, err
		}
	}
	return f.writer.Write(p)
}

func (f *LazyWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}
