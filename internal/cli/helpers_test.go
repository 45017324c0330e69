package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenka29/Hackathon-NCSU/internal/cli"
	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

// fakeService is an in-memory Call Simulation Service.
type fakeService struct {
	URL string

	mu        sync.Mutex
	hits      map[string]int
	initiated []map[string]string
}

func (f *fakeService) hit(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[r.URL.Path]++
}

func (f *fakeService) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

const listBody = `{"calls":[
	{"call_sid":"CA1","phone_number":"+15551230001","scenario_id":"bank_fraud","status":"completed",
	 "started_at":"2026-03-01T09:00:00","ended_at":"2026-03-01T09:02:05"},
	{"call_sid":"CA2","phone_number":"+15551230002","scenario_id":"irs","status":"in_progress",
	 "started_at":"2026-03-01T10:00:00","ended_at":null,"current_turn":"2"},
	{"call_sid":"CA3","phone_number":"+15551230001","scenario_id":"tech_support","status":"failed",
	 "started_at":"2026-03-01T11:00:00","ended_at":"2026-03-01T11:00:10"}
]}`

const auditCA1 = `{
	"call_sid":"CA1",
	"session":{"call_sid":"CA1","phone_number":"+15551230001","scenario_id":"bank_fraud","status":"completed"},
	"transcript":[
		{"turn":2,"speaker":"user","text":"It is 4111 1111 1111 1111"},
		{"turn":1,"speaker":"scammer","text":"Please confirm your card number"}
	],
	"events":[{"event_type":"call_ended","timestamp":"2026-03-01T09:02:05","data":{"duration":125}}],
	"vulnerabilities":[
		{"event_type":"sensitive_data_detected","data":{"turn":2,"matches":[{"type":"credit_card","value":"4111 1111 1111 1111","confidence":0.97}]}}
	]
}`

const auditCA2 = `{"call_sid":"CA2","session":{"call_sid":"CA2","status":"in_progress"},
	"transcript":[],"events":[],"vulnerabilities":[]}`

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{hits: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/call/audit/list", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		if phone := r.URL.Query().Get("phone_number"); phone != "" {
			var all struct {
				Calls []map[string]any `json:"calls"`
			}
			_ = json.Unmarshal([]byte(listBody), &all)
			filtered := all.Calls[:0]
			for _, c := range all.Calls {
				if c["phone_number"] == phone {
					filtered = append(filtered, c)
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"calls": filtered})
			return
		}
		_, _ = w.Write([]byte(listBody))
	})
	mux.HandleFunc("GET /api/call/audit/CA1", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(auditCA1))
	})
	mux.HandleFunc("GET /api/call/audit/CA2", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(auditCA2))
	})
	mux.HandleFunc("GET /api/call/audit/CA3", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"audit store unavailable"}`))
	})
	mux.HandleFunc("GET /api/call/CA1/feedback", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(`{"call_sid":"CA1","feedback":"Never read out your card number."}`))
	})
	mux.HandleFunc("GET /api/call/CA2/feedback", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(`{"call_sid":"CA2","feedback":"should not be requested"}`))
	})
	mux.HandleFunc("GET /api/call/CA1/status", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(`{"call_sid":"CA1","phone_number":"+15551230001","scenario_id":"bank_fraud",
			"status":"completed","started_at":"2026-03-01T09:00:00","ended_at":"2026-03-01T09:02:05","current_turn":4}`))
	})
	mux.HandleFunc("GET /api/call/missing/status", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Call not found"}`))
	})
	mux.HandleFunc("GET /api/call/audit/missing", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Call not found"}`))
	})
	mux.HandleFunc("POST /api/call/initiate", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.initiated = append(f.initiated, req)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"call_sid":"CA9","status":"initiated","message":"Calling now"}`))
	})
	mux.HandleFunc("GET /api/scenarios/", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(`[
			{"id":"bank_fraud","name":"Bank fraud alert","description":"Caller claims to be the bank","difficulty":"easy","lines":[]},
			{"id":"irs","name":"Tax authority","description":"Caller threatens arrest over unpaid tax","difficulty":"medium","lines":[]}
		]`))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(`{"name":"Call Simulation Service","version":"1.2.0","status":"running"}`))
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	f.URL = server.URL
	return f
}

// setupCLITest isolates config and logging state for one test and
// returns the global config directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvServiceURL, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}
