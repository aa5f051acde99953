package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/api"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/config"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found_error"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		httpClient: ts.server.Client(),
	}
}

// useClient points the commands at ts for the duration of the test.
func useClient(t *testing.T, ts *testServer) {
	t.Helper()
	old := newAPIClient
	newAPIClient = func() (*apiClient, error) { return ts.client(), nil }
	t.Cleanup(func() { newAPIClient = old })
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

var ctx = context.Background()

func TestSendChat(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /chat": `{"response":"**Comedy Movies**","session_id":"s-1"}`,
	})

	reply, err := sendChat(ctx, ts.client(), "comedy please", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response != "**Comedy Movies**" || reply.SessionID != "s-1" {
		t.Errorf("reply = %+v", reply)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	var body api.ChatRequest
	if err := json.Unmarshal([]byte(ts.requests[0].Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body.Message != "comedy please" || body.SessionID != "" {
		t.Errorf("body = %+v", body)
	}
}

func TestAskCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /chat": `{"response":"Hello! How can I help?","session_id":"s1"}`,
	})
	useClient(t, ts)

	out, err := runCommand(t, "ask", "--session", "s1", "hello", "there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Hello! How can I help?") {
		t.Errorf("output = %q", out)
	}

	var body api.ChatRequest
	if err := json.Unmarshal([]byte(ts.requests[0].Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body.Message != "hello there" || body.SessionID != "s1" {
		t.Errorf("body = %+v", body)
	}
}

func TestAskCommand_MissingArgs(t *testing.T) {
	_, err := runCommand(t, "ask")
	if err == nil {
		t.Fatal("expected error for missing message")
	}
}

func TestChatLoopKeepsSession(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /chat": `{"response":"ok","session_id":"generated"}`,
	})

	old := noColor
	noColor = true
	defer func() { noColor = old }()

	in := strings.NewReader("hi\n\ncomedy\nquit\nnever sent\n")
	var out bytes.Buffer
	if err := chatLoop(ctx, ts.client(), in, &out, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(ts.requests))
	}
	var second api.ChatRequest
	if err := json.Unmarshal([]byte(ts.requests[1].Body), &second); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if second.SessionID != "generated" {
		t.Errorf("second turn session = %q, want generated", second.SessionID)
	}
	if strings.Count(out.String(), "bot> ok") != 2 {
		t.Errorf("output = %q", out.String())
	}
}

func TestSimilarCommand_URLEncoding(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /similar": `[{"id":1,"title":"John Carter","vote_average":6.1,"release_date":"2012-03-07","genres":["Action"],"score":0.42}]`,
	})
	useClient(t, ts)

	out, err := runCommand(t, "--no-color", "similar", "--limit", "3", "Pirates", "&", "Co")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqPath := ts.requests[0].Path
	if !strings.Contains(reqPath, "title=Pirates+%26+Co") || !strings.Contains(reqPath, "limit=3") {
		t.Errorf("unexpected path: %q", reqPath)
	}
	if !strings.Contains(out, "John Carter (2012)") || !strings.Contains(out, "similarity 0.420") {
		t.Errorf("output = %q", out)
	}
}

func TestSimilarCommand_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"movie \"Nope\" not found","type":"not_found_error"}}`))
	}))
	defer ts.Close()

	client := &apiClient{baseURL: ts.URL, httpClient: ts.Client()}
	_, err := fetchMovies(ctx, client, "/similar?title=Nope")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestPrintMovies(t *testing.T) {
	old := noColor
	noColor = true
	defer func() { noColor = old }()

	score := float32(0.5)
	var buf bytes.Buffer
	printMovies(&buf, []api.MovieView{
		{Title: "Avatar", VoteAverage: 7.2, ReleaseDate: "2009-12-10", Genres: []string{"Action", "Science Fiction"}},
		{Title: "Untitled", VoteAverage: 5, Score: &score},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != " 1. Avatar (2009)  ⭐ 7.2  Action, Science Fiction" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != " 2. Untitled  ⭐ 5.0  similarity 0.500" {
		t.Errorf("line 1 = %q", lines[1])
	}

	buf.Reset()
	printMovies(&buf, nil)
	if buf.String() != "No movies found.\n" {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestRecentCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /interactions": `[{"id":"0123456789abcdef","session_id":"s1","created_at":"2026-03-14T15:04:05Z","user_query":"comedy","intent":"comedy_movies","response":"..."}]`,
	})
	useClient(t, ts)

	out, err := runCommand(t, "--no-color", "recent", "--limit", "5", "--session", "s 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.requests[0].Path != "/interactions?limit=5&session=s+1" {
		t.Errorf("path = %q", ts.requests[0].Path)
	}
	if !strings.Contains(out, "01234567  2026-03-14 15:04  comedy_movies") {
		t.Errorf("output = %q", out)
	}
}

func TestRecentCommand_ShowOne(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /interactions/ix-1": `{"id":"ix-1","session_id":"s1","created_at":"2026-03-14T15:04:05Z","user_query":"hi","intent":"greeting","response":"Hello!"}`,
	})
	useClient(t, ts)

	out, err := runCommand(t, "recent", "ix-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ix storage.Interaction
	if err := json.Unmarshal([]byte(out), &ix); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if ix.ID != "ix-1" || ix.Intent != "greeting" {
		t.Errorf("interaction = %+v", ix)
	}
}

func TestPrintInteractionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printInteractions(&buf, nil)
	if buf.String() != "No interactions found.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFeedbackCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /interactions/ix-1/feedback": `{"status":"recorded"}`,
	})
	useClient(t, ts)

	if _, err := runCommand(t, "feedback", "ix-1", "-1", "wrong", "genre"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body api.FeedbackRequest
	if err := json.Unmarshal([]byte(ts.requests[0].Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body.Score != -1 || body.Notes != "wrong genre" {
		t.Errorf("body = %+v", body)
	}
}

func TestFeedbackCommand_BadScore(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	useClient(t, ts)

	_, err := runCommand(t, "feedback", "ix-1", "5")
	if err == nil {
		t.Fatal("expected error for out-of-range score")
	}
	if len(ts.requests) != 0 {
		t.Errorf("request sent for invalid score")
	}
}

func TestFetchIntentCounts(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /stats/intents": `[{"intent":"greeting","count":3},{"intent":"comedy_movies","count":1}]`,
	})

	counts, err := fetchIntentCounts(ctx, ts.client())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 2 || counts[0] != (storage.IntentCount{Intent: "greeting", Count: 3}) {
		t.Errorf("counts = %+v", counts)
	}
}

func TestFetchHealth_Stopped(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	ts.server.Close()

	_, err := fetchHealth(ctx, ts.client())
	if err == nil {
		t.Fatal("expected error for stopped server")
	}
	if !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("error = %q, want it to mention 'not reachable'", err.Error())
	}
}

func TestNoColorFlag(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "test message")
	if result != "test message" {
		t.Errorf("result = %q, want %q", result, "test message")
	}

	noColor = false
	result = colorize(colorGreen, "test message")
	if !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "DEBUG",
		"warn":  "WARN",
		"error": "ERROR",
		"":      "INFO",
		"loud":  "INFO",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := pidFilePath(t.TempDir())
	if err := writePIDFile(path); err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}
	pid, err := readPIDFile(path)
	if err != nil {
		t.Fatalf("readPIDFile: %v", err)
	}
	if pid <= 0 {
		t.Errorf("pid = %d", pid)
	}
	removePIDFile(path)
	if _, err := readPIDFile(path); err == nil {
		t.Error("PID file still readable after removal")
	}
}

func TestConfigShowAll(t *testing.T) {
	cfg := config.Config{}
	cfg.Server.Port = 4000
	cfg.Data.MoviesPath = "movies.csv"

	found := false
	for _, k := range config.ShowAll(cfg) {
		if k.Key == "server.port" && k.Value == "4000" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find server.port=4000 in ShowAll output")
	}
}
