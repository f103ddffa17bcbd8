package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/traffic-light/internal/status"
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
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Traffic Light</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.lamp { display: inline-block; width: 14px; height: 14px; border-radius: 50%; margin-right: 6px; vertical-align: middle; background: #ccc; }
.lamp.red.on { background: #d00; }
.lamp.yellow.on { background: #da0; }
.lamp.green.on { background: #0a0; }
.lamp.blink.on { background: #06c; }
.on-text { color: green; font-weight: bold; }
.off-text { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>Traffic Light{{if .Config.WSBroker}}<span id="live-dot" class="live-dot pending" title="connecting"></span>{{end}}</h1>

<h2>Lights</h2>
<table>
<tr><th>Red</th><td><span class="lamp red{{if .Lights.Red}} on{{end}}"></span>{{onOff .Lights.Red}}</td></tr>
<tr><th>Yellow</th><td><span class="lamp yellow{{if .Lights.Yellow}} on{{end}}"></span>{{onOff .Lights.Yellow}}</td></tr>
<tr><th>Green</th><td><span class="lamp green{{if .Lights.Green}} on{{end}}"></span>{{onOff .Lights.Green}}</td></tr>
<tr><th>Blink</th><td><span class="lamp blink{{if .Lights.Blink}} on{{end}}"></span>{{onOff .Lights.Blink}}</td></tr>
</table>

<h2>Mode</h2>
<table>
<tr><th>Active</th><td id="mode">{{.Active}}</td></tr>
<tr><th>Emergency flag</th><td id="flag-emergency" class="{{if .Modes.Emergency}}on-text{{else}}off-text{{end}}">{{onOff .Modes.Emergency}}</td></tr>
<tr><th>Shutdown flag</th><td id="flag-shutdown" class="{{if .Modes.Shutdown}}on-text{{else}}off-text{{end}}">{{onOff .Modes.Shutdown}}</td></tr>
<tr><th>Blink flag</th><td id="flag-blink" class="{{if .Modes.Blink}}on-text{{else}}off-text{{end}}">{{onOff .Modes.Blink}}</td></tr>
<tr><th>Cycle position</th><td>{{.CycleElapsed}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Toggle Counts</h2>
<table>
<tr><th>Emergency</th><td>{{.Counts.Emergency}}</td></tr>
<tr><th>Shutdown</th><td>{{.Counts.Shutdown}}</td></tr>
<tr><th>Blink</th><td>{{.Counts.Blink}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Edge debounce</th><td>{{.Config.EdgeDebounceMs}}ms</td></tr>
<tr><th>Poll debounce</th><td>{{.Config.PollDebounceMs}}ms</td></tr>
<tr><th>Cycle</th><td>{{.Config.CycleMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Chip</th><td>{{.Config.Chip}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> · <a href="/metrics">Metrics</a></p>
{{if .Config.WSBroker}}
<script src="/mqtt.min.js"></script>
<script>
(function() {
  var broker = "{{.Config.WSBroker}}";
  var topic = "traffic/controller/events";
  var dot = document.getElementById("live-dot");

  function setFlag(id, on) {
    var el = document.getElementById(id);
    el.textContent = on ? "ON" : "OFF";
    el.className = on ? "on-text" : "off-text";
  }

  function setDot(cls, title) {
    dot.className = "live-dot " + cls;
    dot.title = title;
  }

  var client = mqtt.connect(broker, { reconnectPeriod: 5000 });

  client.on("connect", function() {
    setDot("ok", "live");
    client.subscribe(topic);
  });

  client.on("reconnect", function() {
    setDot("pending", "reconnecting");
  });

  client.on("offline", function() {
    setDot("err", "offline");
  });

  client.on("error", function() {
    setDot("err", "error");
  });

  client.on("message", function(t, payload) {
    try {
      var msg = JSON.parse(payload.toString());
      if (msg.traffic && msg.traffic.modes) {
        setFlag("flag-emergency", msg.traffic.modes.emergency);
        setFlag("flag-shutdown", msg.traffic.modes.shutdown);
        setFlag("flag-blink", msg.traffic.modes.blink);
      }
    } catch (e) {}
  });
})();
</script>
{{end}}
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has method forms of Uptime/CycleElapsed but the template
	// wants plain values.
	data := struct {
		status.Snapshot
		Uptime       time.Duration
		CycleElapsed time.Duration
	}{
		Snapshot:     snap,
		Uptime:       snap.Uptime(),
		CycleElapsed: snap.CycleElapsed(),
	}
	indexTmpl.Execute(w, data)
}
