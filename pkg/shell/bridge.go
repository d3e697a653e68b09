package shell

import (
	"encoding/json"
	"strings"
)

// bridgeScript defines one window function per binding. Calls POST their
// arguments as a JSON array; async results arrive over the websocket. A
// result may beat the POST reply that announces its id, so results for
// unknown ids are held in early until the id is registered.
const bridgeScript = `<script data-fluidui-bridge>
(function () {
  var names = %NAMES%;
  var pending = {};
  var early = {};
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    var p = pending[msg.id];
    if (!p) { early[msg.id] = msg; return; }
    delete pending[msg.id];
    settle(p, msg);
  };
  function settle(p, msg) {
    if (msg.status === 0) { p.resolve(parse(msg.result)); } else { p.reject(new Error(msg.result)); }
  }
  function wait(id) {
    return new Promise(function (resolve, reject) {
      var p = { resolve: resolve, reject: reject };
      var msg = early[id];
      if (msg) { delete early[id]; settle(p, msg); return; }
      pending[id] = p;
    });
  }
  function parse(text) {
    try { return JSON.parse(text); } catch (e) { return text; }
  }
  function call(name, args) {
    return fetch("/bind/" + encodeURIComponent(name), { method: "POST", body: JSON.stringify(args) })
      .then(function (r) { return r.json(); })
      .then(function (msg) {
        if (msg.id) { return wait(msg.id); }
        if (msg.error) { throw new Error(msg.error); }
        return parse(msg.result);
      });
  }
  names.forEach(function (name) {
    window[name] = function () { return call(name, Array.prototype.slice.call(arguments)); };
  });
})();
</script>
`

// injectBridge inserts the bridge script before </body>, or appends it when
// the page has no body end tag.
func injectBridge(page string, names []string) string {
	encoded, err := json.Marshal(names)
	if err != nil || names == nil {
		encoded = []byte("[]")
	}
	script := strings.Replace(bridgeScript, "%NAMES%", string(encoded), 1)
	idx := strings.LastIndex(strings.ToLower(page), "</body>")
	if idx < 0 {
		return page + script
	}
	return page[:idx] + script + page[idx:]
}
