package commands

import (
	"context"
	"maps"

	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

// Telemetry is the recorder commands report to; any dashboard.Telemetry works.
type Telemetry = dashboard.Telemetry

type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}

// shellPayload tags a command event with the shell it touched.
func shellPayload(shellID string, extra map[string]any) map[string]any {
	payload := make(map[string]any, len(extra)+1)
	maps.Copy(payload, extra)
	payload["shell_id"] = shellID
	return payload
}
