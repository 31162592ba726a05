package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a write out to all writers, e.g. stdout and the rotating log file.
// A failing writer does not stop the others; its error is combined into the result.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.writers = append(cw.writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

// Write reports len(p) written if at least one writer took the full message.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	succeeded := 0
	for _, w := range cw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return 0, err
	}
	return len(p), err
}
