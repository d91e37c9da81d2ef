package logger

import (
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_ConfiguraNivelYGlobal(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn", Service: "pos-api"})

	assert.NotNil(t, l)
	assert.Equal(t, zerolog.WarnLevel, l.zl.GetLevel())
	// el logger global de zerolog queda redirigido al mismo nivel
	assert.Equal(t, zerolog.WarnLevel, zlog.Logger.GetLevel())
	assert.Nil(t, l.Debug())
	assert.NotNil(t, l.Error())
}
