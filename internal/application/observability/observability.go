// Package observability concentra cómo los casos de uso reportan fallas:
// nivel de log según la categoría del error de dominio y estado del span.
package observability

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// Fail registra err en el log y en el span. Rechazos de negocio van a debug; fallas de
// almacenamiento a error; una violación de consistencia a error con todos sus campos.
func Fail(log *logger.Logger, span trace.Span, op string, err error) {
	code := domain.CodeOf(err)
	span.SetAttributes(attribute.String("error.code", code))

	var ev *zerolog.Event
	switch domain.KindOf(err) {
	case domain.KindStorage:
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		ev = log.Error()
	case domain.KindConsistency:
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		ev = log.Error().Bool("investigate", true)
	default:
		ev = log.Debug()
	}
	if fields := domain.FieldsOf(err); len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Err(err).Str("op", op).Str("code", code).Msg("operación rechazada")
}
