package rsvp

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/sharath018/party-rsvp-backend/internal/rsvp")
