package main

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/Mohammad-Palla/sherlock-game/cmd/director"

var logger = otelslog.NewLogger(scopeName)
