// Package facehttp is a tiny developer-convenience HTTP surface for
// introspecting a running engine.Face's PIT/CST/key-cache sizes (spec.md
// §10 AMBIENT STACK "Debug/status surface"). It is not part of the NDN
// wire protocol; no peer ever dials this endpoint. Grounded in spirit on
// the teacher's tools/nfdc status-reporting commands (nfdc_cs.go et
// al.), which format forwarder table contents for a human operator, but
// exposed here over HTTP instead of a CLI subcommand since this tree has
// no forwarder process of its own to attach a CLI to. Query parameters
// are decoded with gorilla/schema rather than hand-parsed url.Values.
package facehttp

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/named-data/ndndface/engine"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// statusQuery is the decoded form of GET /status's query string. kind
// selects which table to report on; "" (the default) reports all of
// them.
type statusQuery struct {
	Kind string `schema:"kind"`
}

// Handler serves a JSON snapshot of face's Stats at GET /status. The
// optional "kind" query parameter (pit, cst, keys, transport) narrows
// the response to a single field; any other value (including empty)
// reports everything alongside the Face's ready state.
func Handler(face *engine.Face) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		var q statusQuery
		if err := decoder.Decode(&q, r.URL.Query()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		stats := face.Stats()
		w.Header().Set("Content-Type", "application/json")

		switch q.Kind {
		case "pit":
			json.NewEncoder(w).Encode(map[string]int{"pit": stats.PITEntries})
		case "cst":
			json.NewEncoder(w).Encode(map[string]int{"cst": stats.CSTEntries})
		case "keys":
			json.NewEncoder(w).Encode(map[string]int{"keys": stats.CachedKeys})
		case "transport":
			json.NewEncoder(w).Encode(map[string]bool{
				"up":    stats.TransportUp,
				"local": stats.TransportLocal,
			})
		default:
			json.NewEncoder(w).Encode(stats)
		}
	})
	return mux
}
