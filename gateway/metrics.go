package gateway

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("boardsync/gateway")

type requestMetrics struct {
	logger *log.Logger
	op     string
	start  time.Time
	span   trace.Span
	status int
}

func newRequestMetrics(ctx context.Context, op string, logger *log.Logger) (*requestMetrics, context.Context) {
	spanCtx, span := tracer.Start(ctx, "gateway."+op)
	span.SetAttributes(attribute.String("boardsync.gateway.op", op))
	return &requestMetrics{logger: logger, op: op, start: time.Now(), span: span}, spanCtx
}

func (m *requestMetrics) SetStatus(code int) {
	m.status = code
	m.span.SetAttributes(attribute.Int("http.status_code", code))
}

func (m *requestMetrics) Finish(err error) {
	if err != nil {
		m.span.RecordError(err)
		m.span.SetStatus(codes.Error, err.Error())
	} else {
		m.span.SetStatus(codes.Ok, "")
	}
	m.span.End()

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"op":       m.op,
		"total_ms": durationToMillis(time.Since(m.start)),
	}
	if m.status != 0 {
		fields["status"] = m.status
	}
	if err != nil {
		fields["error"] = err.Error()
		m.logger.WithFields(fields).Error("gateway.request")
		return
	}
	m.logger.WithFields(fields).Debug("gateway.request")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
