package main

import (
	"hacview-backend/cmd/hac-cli/commands"
	"hacview-backend/lib/serviceutil"
	"hacview-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "hac-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
