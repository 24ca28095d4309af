package memory

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/gobishoftu/site/backend/internal/repo/memory")
