// Package trace wraps coders with zap instrumentation. A traced coder
// delegates to the wrapped one unchanged and logs every encode and
// decode with the stream offset and byte count, which makes it easy to
// see where in a byte stream a schema member landed. The package logger
// is a no-op by default; install one with SetLogger to see output.
//
// Tracing is meant for debugging schema layouts, not for hot paths.
package trace

import (
	"go.uber.org/zap"

	"github.com/wippyai/bincodec/codec"
)

// Coder wraps c so every encode and decode is logged under the given
// schema name. Wrap the root of a schema to follow whole values, or an
// inner member to watch just that member.
func Coder(name string, c codec.Coder) codec.Coder {
	return &traced{name: name, inner: c}
}

type traced struct {
	name  string
	inner codec.Coder
}

func (t *traced) WriteValue(w *codec.Writer, v any) (int, error) {
	start := w.Count()
	n, err := t.inner.WriteValue(w, v)
	if err != nil {
		Logger().Warn("encode failed",
			zap.String("schema", t.name),
			zap.Int("offset", start),
			zap.Int("written", n),
			zap.Error(err))
		return n, err
	}
	Logger().Debug("encoded value",
		zap.String("schema", t.name),
		zap.Int("offset", start),
		zap.Int("bytes", n))
	return n, nil
}

func (t *traced) ReadValue(r *codec.Reader) (any, error) {
	start := r.Position()
	v, err := t.inner.ReadValue(r)
	if err != nil {
		Logger().Warn("decode failed",
			zap.String("schema", t.name),
			zap.Int("offset", start),
			zap.Int("consumed", r.Position()-start),
			zap.Error(err))
		return nil, err
	}
	Logger().Debug("decoded value",
		zap.String("schema", t.name),
		zap.Int("offset", start),
		zap.Int("bytes", r.Position()-start),
		zap.Any("value", v))
	return v, nil
}

func (t *traced) DefaultValue() any { return t.inner.DefaultValue() }
