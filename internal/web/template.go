package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/terrarium-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onOff": func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	},
	"unitSym": func(u fmt.Stringer) string {
		if u.String() == "fahrenheit" {
			return "°F"
		}
		return "°C"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Terrarium Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
</style>
</head>
<body>
<h1>Terrarium Controller</h1>

<h2>Readings</h2>
<table>
{{if .HaveReading}}
<tr><th>Temperature</th><td>{{printf "%.1f" .Reading.Temperature}} {{unitSym .Unit}}</td></tr>
<tr><th>Humidity</th><td>{{printf "%.1f" .Reading.Humidity}} %</td></tr>
<tr><th>Light</th><td>{{printf "%.0f" .Reading.Light}} %</td></tr>
{{else}}
<tr><th>Sensors</th><td class="unknown">no valid reading yet</td></tr>
{{end}}
</table>

<h2>Actuators</h2>
<table>
<tr><th>Heater</th><td class="{{if .Actuators.Heating}}on{{else}}off{{end}}">{{onOff .Actuators.Heating}}</td></tr>
<tr><th>Cooling (fan)</th><td class="{{if .Actuators.Cooling}}on{{else}}off{{end}}">{{onOff .Actuators.Cooling}}</td></tr>
<tr><th>Mister</th><td class="{{if .Actuators.Misting}}on{{else}}off{{end}}">{{onOff .Actuators.Misting}}</td></tr>
<tr><th>Venting (fan)</th><td class="{{if .Actuators.Drying}}on{{else}}off{{end}}">{{onOff .Actuators.Drying}}</td></tr>
<tr><th>Lamp</th><td class="{{if .Actuators.Lighting}}on{{else}}off{{end}}">{{onOff .Actuators.Lighting}}</td></tr>
</table>

<h2>Settings</h2>
<table>
<tr><th>Temperature band</th><td>{{index .Settings 0}} &ndash; {{index .Settings 1}} {{unitSym .Unit}}</td></tr>
<tr><th>Humidity band</th><td>{{index .Settings 2}} &ndash; {{index .Settings 3}} %</td></tr>
<tr><th>Light target</th><td>{{index .Settings 4}} %</td></tr>
</table>

<h2>Counters</h2>
<table>
<tr><th>Evaluations</th><td>{{.Counters.Evaluations}}</td></tr>
<tr><th>Sensor faults</th><td>{{.Counters.SensorFaults}}</td></tr>
<tr><th>Menu sessions</th><td>{{.Counters.MenuSessions}}</td></tr>
<tr><th>Edits committed</th><td>{{.Counters.Commits}}</td></tr>
<tr><th>Unit toggles</th><td>{{.Counters.UnitToggles}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Action delay</th><td>{{.Config.ActionDelayMs}}ms</td></tr>
<tr><th>Menu timeout</th><td>{{.Config.MenuTimeoutMs}}ms</td></tr>
<tr><th>Debounce settle</th><td>{{.Config.SettleMs}}ms</td></tr>
<tr><th>Hysteresis</th><td>{{printf "%.2f" .Config.Hysteresis}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> &middot; <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
