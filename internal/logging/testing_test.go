package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	ctx := context.Background()

	tl.Info(ctx, "removing _internal", zap.String("kind", "property"))
	tl.Trace(ctx, "visiting Widget")

	tl.AssertLogged(t, zapcore.InfoLevel, "removing")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "removing")
	tl.AssertField(t, "removing _internal", "kind", "property")
	assert.Equal(t, []string{"visiting Widget"}, tl.Messages(TraceLevel))

	tl.Reset()
	assert.Empty(t, tl.All())
}
