package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"hr-assistant-api/internal/config"
)

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		endpoint string
		insecure bool
	}{
		{"otel-collector:4318", "otel-collector:4318", true},
		{"http://otel-collector:4318/", "otel-collector:4318", true},
		{"https://collector.example.com", "collector.example.com", false},
	}
	for _, tc := range cases {
		endpoint, insecure := normalizeEndpoint(tc.raw)
		assert.Equal(t, tc.endpoint, endpoint, tc.raw)
		assert.Equal(t, tc.insecure, insecure, tc.raw)
	}
}

func TestSetup_WithoutExporter(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.Config{ServiceName: "hr-assistant-api", Environment: "test"}, zerolog.Nop())
	require.NoError(t, err)

	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))
	span.End()

	assert.Empty(t, GetTraceID(context.Background()))
	require.NoError(t, shutdown(context.Background()))
}
