// Package loader resolves schema descriptor sources. Given an already-parsed
// object, raw bytes, inline JSON text, a file path or an http(s) URL, it
// hands back the parsed descriptor object or a load error; deciding what the
// object means is the caller's business.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// maxDescriptorBytes caps how much of a remote descriptor gets read.
const maxDescriptorBytes = 16 << 20

var (
	httpClientMu sync.RWMutex
	httpClient   = &http.Client{Timeout: 30 * time.Second}
)

// SetHTTPClient replaces the client used for URL descriptor sources; nil
// values are ignored.
func SetHTTPClient(c *http.Client) {
	if c == nil {
		return
	}
	httpClientMu.Lock()
	httpClient = c
	httpClientMu.Unlock()
}

func getHTTPClient() *http.Client {
	httpClientMu.RLock()
	c := httpClient
	httpClientMu.RUnlock()
	return c
}

// Load resolves a descriptor source. Maps pass through shallow-copied; bytes
// parse as JSON with a YAML fallback; strings dispatch on shape: inline JSON
// when the text starts with "{", an http(s) URL, "@path" forcing a file
// read, or else a file path whose .yaml/.yml extension selects the YAML
// parser.
func Load(source any) (map[string]any, error) {
	return LoadContext(context.Background(), source)
}

// LoadContext is Load with a context governing the URL fetch.
func LoadContext(ctx context.Context, source any) (map[string]any, error) {
	switch src := source.(type) {
	case map[string]any:
		out := make(map[string]any, len(src))
		for k, v := range src {
			out[k] = v
		}
		return out, nil
	case []byte:
		return parseBytes(src)
	case string:
		return loadString(ctx, src)
	}
	return nil, fmt.Errorf("unsupported descriptor source %T", source)
}

func loadString(ctx context.Context, s string) (map[string]any, error) {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(trimmed, "@"):
		return loadFile(trimmed[1:])
	case strings.HasPrefix(trimmed, "{"):
		return parseJSON([]byte(trimmed))
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return fetchURL(ctx, trimmed)
	}
	return loadFile(trimmed)
}

func loadFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	if isYAMLName(path) {
		return parseYAML(b)
	}
	return parseBytes(b)
}

func fetchURL(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build descriptor request: %w", err)
	}
	resp, err := getHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch descriptor %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch descriptor %s: unexpected status %s", url, resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDescriptorBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", url, err)
	}
	if len(b) > maxDescriptorBytes {
		return nil, fmt.Errorf("descriptor %s exceeds %d bytes", url, maxDescriptorBytes)
	}
	if isYAMLName(url) {
		return parseYAML(b)
	}
	return parseBytes(b)
}

func isYAMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// parseBytes tries JSON first and falls back to YAML, reporting the JSON
// error when neither parses.
func parseBytes(b []byte) (map[string]any, error) {
	m, jsonErr := parseJSON(b)
	if jsonErr == nil {
		return m, nil
	}
	if m, yamlErr := parseYAML(b); yamlErr == nil {
		return m, nil
	}
	return nil, jsonErr
}

// parseJSON decodes a descriptor object keeping numbers as json.Number, so
// integer bounds survive without float rounding.
func parseJSON(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse descriptor JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse descriptor JSON: trailing data")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("descriptor is not an object")
	}
	return m, nil
}

func parseYAML(b []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse descriptor YAML: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("descriptor is empty")
	}
	return m, nil
}
