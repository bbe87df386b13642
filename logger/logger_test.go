package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantLevel zerolog.Level
		wantDebug bool
	}{
		{name: "info by default", debug: false, wantLevel: zerolog.InfoLevel},
		{name: "debug when asked", debug: true, wantLevel: zerolog.DebugLevel, wantDebug: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.debug)
			assert.Equal(t, tt.wantLevel, log.GetLevel())

			log.Debug().Str("url", "http://x/").Msg("debug line")
			log.Info().Msg("info line")

			assert.Contains(t, buf.String(), `"message":"info line"`)
			assert.Contains(t, buf.String(), `"time":`)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
		})
	}
}
