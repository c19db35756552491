package mixbus

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/Mohammad-Palla/sherlock-game/core/audio/mixbus"

var logger = otelslog.NewLogger(scopeName)
