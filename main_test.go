package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/breezy/models"
	"github.com/urfave/cli/v2"
)

const articleHTML = `<html><head><title>Field Notes</title>
<meta name="description" content="Notes from the field"></head>
<body>
<h1>Observations from the northern survey</h1>
<p>The survey team walked twelve kilometers along the ridge before noon.</p>
<p>Most of the afternoon was spent cataloguing lichens on the exposed granite.</p>
<li>ok</li>
</body></html>`

func runApp(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := 0
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(_ *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
	}

	if err := app.Run(append([]string{"breezy"}, args...)); err != nil && code == 0 {
		code = 1
	}
	return stdout.String(), stderr.String(), code
}

func clearKeyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("BREEZY_API_KEY", "")
}

func newProxyServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/raw" || r.URL.Query().Get("url") != "https://example.com/notes" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(articleHTML))
	}))
	t.Cleanup(server.Close)
	return server
}

func newModelServer(t *testing.T, gotKey *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"A survey of ridge lichens."}]}}]}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestKeyCommands(t *testing.T) {
	clearKeyEnv(t)
	dbPath := filepath.Join(t.TempDir(), "breezy.db")

	stdout, _, code := runApp(t, "", "--db", dbPath, "key", "show")
	if code != 0 || !strings.Contains(stdout, "No API key saved") {
		t.Fatalf("key show on empty store = (%q, %d)", stdout, code)
	}

	_, stderr, code := runApp(t, "", "--db", dbPath, "key", "set", "   ")
	if code != 1 || !strings.Contains(stderr, "error: Please enter an API key") {
		t.Errorf("key set with blank key = (%q, %d)", stderr, code)
	}

	_, stderr, code = runApp(t, "", "--db", dbPath, "key", "set", "AIzaSecret1234")
	if code != 0 || !strings.Contains(stderr, "success: API key saved") {
		t.Fatalf("key set = (%q, %d)", stderr, code)
	}

	stdout, _, _ = runApp(t, "", "--db", dbPath, "--format", "json", "key", "show")
	var status struct {
		Saved bool   `json:"saved"`
		Key   string `json:"key"`
	}
	if err := json.Unmarshal([]byte(stdout), &status); err != nil {
		t.Fatalf("key show output is not JSON: %v\n%s", err, stdout)
	}
	if !status.Saved || status.Key != "**********1234" {
		t.Errorf("key show = %+v, want masked key", status)
	}

	_, stderr, code = runApp(t, "", "--db", dbPath, "key", "clear")
	if code != 0 || !strings.Contains(stderr, "success: API key removed") {
		t.Errorf("key clear = (%q, %d)", stderr, code)
	}
	stdout, _, _ = runApp(t, "", "--db", dbPath, "key", "show")
	if !strings.Contains(stdout, "No API key saved") {
		t.Errorf("key show after clear = %q", stdout)
	}
}

func TestKeySet_FromStdin(t *testing.T) {
	clearKeyEnv(t)
	dbPath := filepath.Join(t.TempDir(), "breezy.db")

	if _, _, code := runApp(t, "AIzaFromStdin\n", "--db", dbPath, "key", "set"); code != 0 {
		t.Fatalf("key set from stdin exit code = %d", code)
	}
	stdout, _, _ := runApp(t, "", "--db", dbPath, "key", "show")
	if !strings.HasSuffix(strings.TrimSpace(stdout), "tdin") {
		t.Errorf("key show = %q, want key ending in tdin", stdout)
	}
}

func TestURLCommand(t *testing.T) {
	clearKeyEnv(t)
	proxy := newProxyServer(t)
	var gotKey string
	model := newModelServer(t, &gotKey)
	dbPath := filepath.Join(t.TempDir(), "breezy.db")

	if _, _, code := runApp(t, "", "--db", dbPath, "key", "set", "AIzaStored"); code != 0 {
		t.Fatalf("key set exit code = %d", code)
	}

	stdout, stderr, code := runApp(t, "",
		"--db", dbPath, "--quiet", "--format", "json",
		"--proxy-url", proxy.URL, "--endpoint", model.URL,
		"url", "https://example.com/notes")
	if code != 0 {
		t.Fatalf("url exit code = %d, stderr = %s", code, stderr)
	}

	var result models.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("url output is not JSON: %v\n%s", err, stdout)
	}
	if !result.Summary.Success || result.Summary.Summary != "A survey of ridge lichens." {
		t.Errorf("summary = %+v", result.Summary)
	}
	if result.Content.Title != "Field Notes" {
		t.Errorf("title = %q", result.Content.Title)
	}
	if result.Content.Metadata.URL != "https://example.com/notes" {
		t.Errorf("metadata url = %q", result.Content.Metadata.URL)
	}
	if !strings.Contains(result.Content.Content, "lichens") || strings.HasSuffix(result.Content.Content, "ok") {
		t.Errorf("content = %q", result.Content.Content)
	}
	if gotKey != "AIzaStored" {
		t.Errorf("model endpoint got key %q, want stored key", gotKey)
	}
}

func TestURLCommand_APIKeyFlagOverridesStore(t *testing.T) {
	clearKeyEnv(t)
	proxy := newProxyServer(t)
	var gotKey string
	model := newModelServer(t, &gotKey)

	_, stderr, code := runApp(t, "",
		"--db", filepath.Join(t.TempDir(), "breezy.db"), "--quiet",
		"--proxy-url", proxy.URL, "--endpoint", model.URL, "--api-key", "AIzaFlag",
		"url", "https://example.com/notes")
	if code != 0 {
		t.Fatalf("url exit code = %d, stderr = %s", code, stderr)
	}
	if gotKey != "AIzaFlag" {
		t.Errorf("model endpoint got key %q, want flag key", gotKey)
	}
}

func TestURLCommand_Failures(t *testing.T) {
	clearKeyEnv(t)
	proxy := newProxyServer(t)
	var gotKey string
	model := newModelServer(t, &gotKey)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantNotice string
	}{
		{
			name:       "missing key",
			args:       []string{"url", "https://example.com/notes"},
			wantCode:   1,
			wantNotice: "Please save your Gemini API key first",
		},
		{
			name:       "invalid url",
			args:       []string{"--api-key", "k", "url", "ftp://example.com"},
			wantCode:   1,
			wantNotice: "invalid URL",
		},
		{
			name:       "proxy 404",
			args:       []string{"--api-key", "k", "url", "https://example.com/missing"},
			wantCode:   2,
			wantNotice: "status code: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{
				"--db", filepath.Join(t.TempDir(), "breezy.db"), "--quiet",
				"--proxy-url", proxy.URL, "--endpoint", model.URL,
			}, tt.args...)
			_, stderr, code := runApp(t, "", args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr, tt.wantNotice) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantNotice)
			}
		})
	}
}

func TestExtractCommand_URL(t *testing.T) {
	proxy := newProxyServer(t)

	stdout, stderr, code := runApp(t, "", "--quiet", "--proxy-url", proxy.URL,
		"extract", "--url", "https://example.com/notes")
	if code != 0 {
		t.Fatalf("extract exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "Field Notes\n") {
		t.Errorf("output should start with the title, got %q", stdout)
	}
	if !strings.Contains(stdout, "1 min read") || !strings.Contains(stdout, "cataloguing lichens") {
		t.Errorf("output = %q", stdout)
	}
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "breezy.yaml")
	proxy := newProxyServer(t)
	writeFile(t, cfgPath, "format: yaml\nproxy_url: "+proxy.URL+"\n")

	stdout, stderr, code := runApp(t, "", "--quiet", "--config", cfgPath,
		"extract", "--url", "https://example.com/notes")
	if code != 0 {
		t.Fatalf("extract exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "title: Field Notes") {
		t.Errorf("expected yaml output, got %q", stdout)
	}

	stdout, _, _ = runApp(t, "", "--quiet", "--config", cfgPath, "--format", "json",
		"extract", "--url", "https://example.com/notes")
	if !strings.Contains(stdout, `"title": "Field Notes"`) {
		t.Errorf("flag should override config format, got %q", stdout)
	}
}

func TestMissingConfigFileFails(t *testing.T) {
	proxy := newProxyServer(t)
	missing := filepath.Join(t.TempDir(), "typo.yaml")

	stdout, _, code := runApp(t, "", "--quiet", "--config", missing, "--proxy-url", proxy.URL,
		"extract", "--url", "https://example.com/notes")
	if code != 1 {
		t.Errorf("extract exit code = %d, want 1 for a missing config file", code)
	}
	if stdout != "" {
		t.Errorf("extract should not run with a missing config file, got %q", stdout)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}
