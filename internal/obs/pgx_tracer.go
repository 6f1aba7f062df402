package obs

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ctxKeyQuerySpan struct{}

// PGXTracer emits one span per SQL statement. Statements are truncated in
// span attributes to keep trace payloads bounded.
type PGXTracer struct{}

const maxStatementAttr = 300

func (PGXTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx, span := otel.Tracer("db.pgx").Start(ctx, "pgx.query")

	stmt := strings.TrimSpace(data.SQL)
	if len(stmt) > maxStatementAttr {
		stmt = stmt[:maxStatementAttr] + "..."
	}
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", stmt),
	)
	if verb := strings.Fields(stmt); len(verb) > 0 {
		span.SetAttributes(attribute.String("db.operation", verb[0]))
	}
	return context.WithValue(ctx, ctxKeyQuerySpan{}, span)
}

func (PGXTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(ctxKeyQuerySpan{}).(trace.Span)
	if !ok {
		return
	}
	if data.Err != nil {
		span.RecordError(data.Err)
	}
	span.End()
}
