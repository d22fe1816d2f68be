package main

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/kr/pretty"
	"github.com/ngerakines/aurora/client"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// controller is an in-memory stand-in for a real device.
type controller struct {
	token string

	mu         sync.Mutex
	doc        map[string]interface{}
	streamAddr *net.UDPAddr
}

func newController(token string, panels int, rhythm bool, streamAddr *net.UDPAddr) *controller {
	info := client.Info{
		Name:            "Fake Aurora",
		SerialNo:        "FAKE0000001",
		Manufacturer:    "Nanoleaf",
		FirmwareVersion: "3.1.0",
		Model:           "NL22",
	}
	info.State.On.Value = true
	info.State.Brightness = client.Range{Value: 100, Max: 100, Min: 0}
	info.State.Hue = client.Range{Value: 0, Max: 360, Min: 0}
	info.State.Sat = client.Range{Value: 0, Max: 100, Min: 0}
	info.State.Ct = client.Range{Value: 4000, Max: 6500, Min: 1200}
	info.State.ColorMode = "effect"
	info.Effects.Select = "Flames"
	info.Effects.EffectsList = []string{"Flames", "Forest", "Nemo", "Snowfall"}
	info.PanelLayout.GlobalOrientation = client.Range{Value: 0, Max: 360, Min: 0}
	info.PanelLayout.Layout.SideLength = 150
	info.PanelLayout.Layout.PositionData = lo.Times(panels, func(i int) client.PanelPosition {
		return client.PanelPosition{PanelID: 100 + i, X: 75 * i, Y: 43 * (i % 2), O: 60 * (i % 2), ShapeType: client.ShapeTriangle}
	})
	info.PanelLayout.Layout.NumPanels = panels
	if rhythm {
		info.Rhythm = &client.RhythmInfo{
			RhythmConnected: true,
			RhythmID:        1,
			HardwareVersion: "2.4",
			FirmwareVersion: "1.4.2",
			RhythmPos:       &client.RhythmPosition{X: 0, Y: 120, O: 0},
		}
		info.PanelLayout.Layout.PositionData = append(info.PanelLayout.Layout.PositionData, client.PanelPosition{
			PanelID:   99,
			Y:         120,
			ShapeType: client.ShapeRhythm,
		})
		info.PanelLayout.Layout.NumPanels++
	} else {
		info.Rhythm = &client.RhythmInfo{}
	}

	data, _ := json.Marshal(info)
	doc := map[string]interface{}{}
	_ = json.Unmarshal(data, &doc)

	return &controller{token: token, doc: doc, streamAddr: streamAddr}
}

func (c *controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefix := "/api/v1/" + c.token
	if !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	parts := lo.Compact(strings.Split(strings.TrimPrefix(r.URL.Path, prefix), "/"))

	var body map[string]interface{}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	log.WithFields(log.Fields{
		"method": r.Method,
		"path":   strings.Join(parts, "/"),
	}).Info("request")

	c.mu.Lock()
	defer c.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		value, ok := lookup(c.doc, parts)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, value)
	case http.MethodPut:
		if len(parts) != 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		c.put(w, parts[0], body)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c *controller) put(w http.ResponseWriter, resource string, body map[string]interface{}) {
	switch resource {
	case "state":
		c.putState(body)
	case "effects":
		if name, ok := body["select"].(string); ok {
			c.section("effects")["select"] = name
			c.section("state")["colorMode"] = "effect"
			break
		}
		if write, ok := body["write"].(map[string]interface{}); ok {
			status, resp := c.writeEffect(write)
			if resp != nil {
				writeJSON(w, status, resp)
				return
			}
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	case "rhythm":
		if mode, ok := body["rhythmMode"]; ok {
			c.section("rhythm")["rhythmMode"] = mode
		}
	case "identify":
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *controller) putState(body map[string]interface{}) {
	state := c.section("state")
	for key, value := range body {
		if key == "on" {
			state["on"] = map[string]interface{}{"value": value}
			continue
		}
		prop, ok := state[key].(map[string]interface{})
		if !ok {
			continue
		}
		change, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		current, _ := prop["value"].(float64)
		if v, ok := change["value"].(float64); ok {
			current = v
		}
		if inc, ok := change["increment"].(float64); ok {
			current += inc
		}
		min, _ := prop["min"].(float64)
		max, _ := prop["max"].(float64)
		prop["value"] = lo.Clamp(current, min, max)

		switch key {
		case "hue", "sat":
			state["colorMode"] = "hs"
		case "ct":
			state["colorMode"] = "ct"
		}
	}
}

func (c *controller) writeEffect(write map[string]interface{}) (int, interface{}) {
	effects := c.section("effects")
	list := lo.Map(effects["effectsList"].([]interface{}), func(v interface{}, _ int) string { return v.(string) })
	name, _ := write["animName"].(string)

	switch write["command"] {
	case "display":
		if write["animType"] == "extControl" {
			c.section("state")["colorMode"] = "effect"
			effects["select"] = "*ExtControl*"
			return http.StatusOK, client.StreamEndpoint{
				IP:       c.streamAddr.IP.String(),
				Port:     c.streamAddr.Port,
				Protocol: "udp",
			}
		}
		return http.StatusNoContent, nil
	case "request":
		if !lo.Contains(list, name) {
			return http.StatusNotFound, nil
		}
		return http.StatusOK, map[string]interface{}{"animName": name, "animType": "plugin", "loop": true}
	case "requestAll":
		return http.StatusOK, map[string]interface{}{
			"animations": lo.Map(list, func(n string, _ int) map[string]interface{} {
				return map[string]interface{}{"animName": n, "animType": "plugin"}
			}),
		}
	case "delete":
		if !lo.Contains(list, name) {
			return http.StatusNotFound, nil
		}
		effects["effectsList"] = lo.ToAnySlice(lo.Without(list, name))
	case "rename":
		newName, _ := write["newName"].(string)
		if !lo.Contains(list, name) {
			return http.StatusNotFound, nil
		}
		effects["effectsList"] = lo.ToAnySlice(lo.Replace(list, name, newName, 1))
		if effects["select"] == name {
			effects["select"] = newName
		}
	default:
		return http.StatusUnprocessableEntity, nil
	}
	return http.StatusNoContent, nil
}

func (c *controller) section(name string) map[string]interface{} {
	return c.doc[name].(map[string]interface{})
}

func lookup(doc interface{}, parts []string) (interface{}, bool) {
	current := doc
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

// listenStream prints every external control frame received on conn until it is closed.
func listenStream(conn net.PacketConn) {
	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			log.WithError(err).Info("stream listener stopped")
			return
		}
		commands, err := client.DecodeFrame(buf[:n])
		if err != nil {
			log.WithError(err).WithField("from", addr.String()).Warn("bad frame")
			continue
		}
		log.WithFields(log.Fields{
			"from":   addr.String(),
			"panels": len(commands),
		}).Info("frame")
		pretty.Println(commands)
	}
}
