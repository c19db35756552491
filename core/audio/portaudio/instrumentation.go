package portaudio

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/Mohammad-Palla/sherlock-game/core/audio/portaudio"

var logger = otelslog.NewLogger(scopeName)
