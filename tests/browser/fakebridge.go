package browser

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// In-memory bridge: the client posts messages here and the admin console's
// home page polls them back out. A relay with zero latency, which is all the
// runner can observe of the real bridging service anyway.

func (env *TestEnv) registerBridgeRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /bridge/messages", func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		msgs := append([]string(nil), env.messages...)
		env.mu.Unlock()
		writeJSON(w, http.StatusOK, msgs)
	})

	mux.HandleFunc("POST /bridge/send", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := readJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		env.mu.Lock()
		if !env.dropMessages {
			env.messages = append(env.messages, req.Text)
		}
		env.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "relayed"})
	})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
