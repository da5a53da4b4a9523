package log

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Logger = (*SpanLogger)(nil)

// SpanLogger wraps another Logger and mirrors warn- and error-level messages
// onto an OpenTelemetry span as span events. Lower levels pass through to the
// inner logger untouched.
type SpanLogger struct {
	inner Logger
	span  trace.Span
}

// NewSpanLogger wraps lg so that warnings and errors are also recorded on span.
func NewSpanLogger(lg Logger, span trace.Span) Logger {
	return &SpanLogger{inner: lg, span: span}
}

func (l *SpanLogger) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

func (l *SpanLogger) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l *SpanLogger) Warn(msg string, keysAndValues ...any) {
	l.span.AddEvent(msg, trace.WithAttributes(toAttributes(keysAndValues)...))
	l.inner.Warn(msg, keysAndValues...)
}

func (l *SpanLogger) Error(msg string, keysAndValues ...any) {
	l.span.AddEvent(msg, trace.WithAttributes(toAttributes(keysAndValues)...))
	l.span.SetStatus(codes.Error, msg)
	l.inner.Error(msg, keysAndValues...)
}

func (l *SpanLogger) Fatal(msg string, keysAndValues ...any) {
	l.span.AddEvent(msg, trace.WithAttributes(toAttributes(keysAndValues)...))
	l.span.SetStatus(codes.Error, msg)
	l.inner.Fatal(msg, keysAndValues...)
}

func (l *SpanLogger) WithKV(key string, value any) Logger {
	return &SpanLogger{inner: l.inner.WithKV(key, value), span: l.span}
}

func (l *SpanLogger) WithName(name string) Logger {
	return &SpanLogger{inner: l.inner.WithName(name), span: l.span}
}

func (l *SpanLogger) Name() string {
	return l.inner.Name()
}

// toAttributes converts alternating keys and values into span attributes.
// A trailing key without a value is dropped.
func toAttributes(keysAndValues []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		attrs = append(attrs, attribute.String(key, fmt.Sprint(keysAndValues[i+1])))
	}
	return attrs
}
