package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

// fixtures mirror the shape of real api.nilu.no payloads.
var (
	fixtureAreas = []map[string]any{
		{"zone": "Vestlandet", "municipality": "Bergen", "area": "bergen"},
		{"zone": "Østlandet", "municipality": "Oslo", "area": "oslo"},
	}

	fixtureStations = []map[string]any{
		{"id": 462, "area": "bergen", "station": "Danmarks plass"},
		{"id": 820, "area": "oslo", "station": "Hjortnes"},
	}

	fixtureComponents = []map[string]any{
		{"component": "NO2", "unit": "µg/m³"},
		{"component": "PM10", "unit": "µg/m³"},
	}

	fixtureAQIs = []map[string]any{
		{"component": "NO2", "aqis": []map[string]any{
			{"index": 1, "text": "Low"},
			{"index": 2, "text": "Moderate"},
		}},
	}

	fixtureTimeseries = []map[string]any{
		{"id": 7220, "station": "Danmarks plass", "component": "NOx", "timestep": 3600},
		{"id": 9112, "station": "Hjortnes", "component": "PM10", "timestep": 3600},
	}

	fixtureObservations = []map[string]any{
		{"station": "Danmarks plass", "component": "NOx", "values": []map[string]any{
			{"fromTime": "2021-05-01T00:00:00", "value": 12.3},
			{"fromTime": "2021-05-01T01:00:00", "value": 14.1},
		}},
	}
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("unable to encode fixture: %v", err)
	}
}

// rawQueryValue avoids url.ParseQuery, which rejects the unencoded
// semicolons the client sends in the components parameter.
func rawQueryValue(r *http.Request, name string) string {
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && kv[0] == name {
			return kv[1]
		}
	}
	return ""
}

// newNILUServer serves the fixtures on every endpoint the client
// knows, recording the last query string per path.
func newNILUServer(t *testing.T, queries map[string]string) *httptest.Server {
	t.Helper()

	record := func(r *http.Request) {
		queries[r.URL.Path] = r.URL.RawQuery
	}

	r := mux.NewRouter()
	r.HandleFunc("/lookup/areas", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(t, w, fixtureAreas)
	}).Methods("GET")
	r.HandleFunc("/lookup/stations", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		area := rawQueryValue(r, "area")
		out := make([]map[string]any, 0, len(fixtureStations))
		for _, s := range fixtureStations {
			if area != "" && s["area"] != area {
				continue
			}
			out = append(out, s)
		}
		writeJSON(t, w, out)
	}).Methods("GET")
	r.HandleFunc("/lookup/components", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(t, w, fixtureComponents)
	}).Methods("GET")
	r.HandleFunc("/lookup/aqis", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(t, w, fixtureAQIs)
	}).Methods("GET")
	r.HandleFunc("/lookup/timeseries", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(t, w, fixtureTimeseries)
	}).Methods("GET")
	r.HandleFunc("/obs/historical/{fromtime}/{totime}/{station}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if vars := mux.Vars(r); vars["station"] != "all" && vars["station"] != "Danmarks plass" {
			writeJSON(t, w, []map[string]any{})
			return
		}
		writeJSON(t, w, fixtureObservations)
	}).Methods("GET")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}
