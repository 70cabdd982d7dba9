package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/etherlabsio/healthcheck/v2"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
)

// Canned lookup data, small but shaped like real api.nilu.no payloads.
var (
	areas = []map[string]any{
		{"zone": "Vestlandet", "municipality": "Bergen", "area": "bergen"},
		{"zone": "Østlandet", "municipality": "Oslo", "area": "oslo"},
	}

	stations = []map[string]any{
		{"id": 462, "zone": "Vestlandet", "municipality": "Bergen", "area": "bergen",
			"station": "Danmarks plass", "type": "Trafikk", "latitude": 60.3705, "longitude": 5.3421},
		{"id": 820, "zone": "Østlandet", "municipality": "Oslo", "area": "oslo",
			"station": "Hjortnes", "type": "Trafikk", "latitude": 59.9108, "longitude": 10.7046},
	}

	components = []map[string]any{
		{"component": "NO2", "unit": "µg/m³"},
		{"component": "NOx", "unit": "µg/m³"},
		{"component": "PM10", "unit": "µg/m³"},
	}

	aqis = []map[string]any{
		{"component": "NO2", "unit": "µg/m³", "aqis": []map[string]any{
			{"index": 1, "text": "Low", "fromValue": 0, "toValue": 100},
			{"index": 2, "text": "Moderate", "fromValue": 100, "toValue": 200},
			{"index": 3, "text": "High", "fromValue": 200, "toValue": 400},
		}},
		{"component": "PM10", "unit": "µg/m³", "aqis": []map[string]any{
			{"index": 1, "text": "Low", "fromValue": 0, "toValue": 60},
			{"index": 2, "text": "Moderate", "fromValue": 60, "toValue": 120},
		}},
	}

	timeseries = []map[string]any{
		{"id": 7220, "station": "Danmarks plass", "component": "NOx", "timestep": 3600},
		{"id": 7221, "station": "Danmarks plass", "component": "NO2", "timestep": 3600},
		{"id": 9112, "station": "Hjortnes", "component": "PM10", "timestep": 3600},
	}
)

func main() {
	r := mux.NewRouter()
	r.HandleFunc("/lookup/areas", handleAreas).Methods("GET")
	r.HandleFunc("/lookup/stations", handleStations).Methods("GET")
	r.HandleFunc("/lookup/components", handleComponents).Methods("GET")
	r.HandleFunc("/lookup/aqis", handleAQIs).Methods("GET")
	r.HandleFunc("/lookup/timeseries", handleTimeseries).Methods("GET")
	r.HandleFunc("/obs/historical/{fromtime}/{totime}/{station}", handleObservations).Methods("GET")
	r.Handle("/healthcheck", healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker("fixtures", healthcheck.CheckerFunc(
			func(ctx context.Context) error { return nil },
		)),
	)).Methods("GET")

	chain := alice.New(
		recovery,
		func(h http.Handler) http.Handler {
			return gorillaHandlers.LoggingHandler(os.Stdout, h)
		},
	).Then(r)

	addr := ":8090"
	if v := os.Getenv("MOCK_NILU_ADDR"); v != "" {
		addr = v
	}

	log.Printf("Starting mock NILU server on %s", addr)
	if err := http.ListenAndServe(addr, chain); err != nil {
		log.Fatalf("Mock NILU server failed: %v", err)
	}
}

func recovery(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Recovered from an error: %v", rec)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			}
		}()
		h.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Unable to encode response: %v", err)
	}
}

// rawQueryValue looks a parameter up without url.ParseQuery, which
// would choke on the unencoded semicolons the client sends.
func rawQueryValue(r *http.Request, name string) string {
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && kv[0] == name {
			return kv[1]
		}
	}
	return ""
}

func handleAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, areas)
}

func handleStations(w http.ResponseWriter, r *http.Request) {
	area := rawQueryValue(r, "area")

	out := make([]map[string]any, 0, len(stations))
	for _, s := range stations {
		if area != "" && !strings.EqualFold(s["area"].(string), area) {
			continue
		}
		out = append(out, s)
	}
	writeJSON(w, out)
}

func handleComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, components)
}

func handleAQIs(w http.ResponseWriter, r *http.Request) {
	component := rawQueryValue(r, "component")

	out := make([]map[string]any, 0, len(aqis))
	for _, a := range aqis {
		if component != "" && !strings.EqualFold(a["component"].(string), component) {
			continue
		}
		out = append(out, a)
	}
	writeJSON(w, out)
}

func handleTimeseries(w http.ResponseWriter, r *http.Request) {
	station := rawQueryValue(r, "station")
	component := rawQueryValue(r, "component")

	out := make([]map[string]any, 0, len(timeseries))
	for _, ts := range timeseries {
		if station != "" && !strings.EqualFold(ts["station"].(string), station) {
			continue
		}
		if component != "" && !strings.EqualFold(ts["component"].(string), component) {
			continue
		}
		out = append(out, ts)
	}
	writeJSON(w, out)
}

func handleObservations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	from, err := time.Parse("2006-01-02", vars["fromtime"])
	if err != nil {
		http.Error(w, "fromtime must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", vars["totime"]); err != nil {
		http.Error(w, "totime must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}

	wanted := map[string]bool{}
	if components := rawQueryValue(r, "components"); components != "" {
		for _, c := range strings.Split(components, ";") {
			wanted[strings.ToLower(c)] = true
		}
	}

	station := vars["station"]
	out := make([]map[string]any, 0, len(timeseries))
	for _, ts := range timeseries {
		if station != "all" && !strings.EqualFold(ts["station"].(string), station) {
			continue
		}
		component := ts["component"].(string)
		if len(wanted) > 0 && !wanted[strings.ToLower(component)] {
			continue
		}
		out = append(out, map[string]any{
			"station":   ts["station"],
			"component": component,
			"unit":      "µg/m³",
			"values": []map[string]any{
				{"fromTime": from.Format("2006-01-02T15:04:05"), "value": 12.3, "qualityControlled": true},
				{"fromTime": from.Add(time.Hour).Format("2006-01-02T15:04:05"), "value": 14.1, "qualityControlled": true},
			},
		})
	}
	writeJSON(w, out)
}
