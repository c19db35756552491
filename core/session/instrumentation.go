package session

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/Mohammad-Palla/sherlock-game/core/session"

var logger = otelslog.NewLogger(scopeName)
