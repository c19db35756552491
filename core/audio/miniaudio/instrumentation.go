package miniaudio

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/Mohammad-Palla/sherlock-game/core/audio/miniaudio"

var logger = otelslog.NewLogger(scopeName)
