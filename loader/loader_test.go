package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	homeReport  = `{"requestedUrl":"http://localhost:PORT/","categories":{"performance":{"score":0.9}},"audits":{}}`
	aboutReport = `{"finalUrl":"http://localhost:PORT/about","categories":{},"audits":{}}`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRuns(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantURLs []string
		wantErr  bool
	}{
		{
			name:     "array of runs with serialized reports",
			path:     writeFile(t, dir, "runs.json", `[{"url":"http://x/","lhr":"{\"categories\":{}}"},{"url":"http://x/a","lhr":null}]`),
			wantURLs: []string{"http://x/", "http://x/a"},
		},
		{
			name:     "single report",
			path:     writeFile(t, dir, "single.json", homeReport),
			wantURLs: []string{"http://localhost:PORT/"},
		},
		{
			name:    "report without url",
			path:    writeFile(t, dir, "nourl.json", `{"categories":{}}`),
			wantErr: true,
		},
		{
			name:    "broken json",
			path:    writeFile(t, dir, "broken.json", `[{"url":`),
			wantErr: true,
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.json"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := LoadRuns(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var urls []string
			for _, r := range runs {
				urls = append(urls, r.URL)
			}
			assert.Equal(t, tt.wantURLs, urls)
		})
	}
}

func TestLoadRuns_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lhr-2.json", aboutReport)
	writeFile(t, dir, "lhr-1.json", homeReport)
	writeFile(t, dir, "manifest.json", `[]`)
	writeFile(t, dir, "home.report.json", homeReport)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lhr-dir.json"), 0o755))

	runs, err := LoadRuns(dir)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, "http://localhost:PORT/", runs[0].URL)
	assert.Equal(t, "http://localhost:PORT/", runs[1].URL)
	assert.Equal(t, "http://localhost:PORT/about", runs[2].URL)
	assert.JSONEq(t, homeReport, string(runs[0].LHR))
	assert.Nil(t, runs[0].Report)
}

func TestLoadRuns_EmptyDirectory(t *testing.T) {
	_, err := LoadRuns(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoReports))
}

func TestLoadLinks(t *testing.T) {
	dir := t.TempDir()

	links, err := LoadLinks(writeFile(t, dir, "links.json", `{"http://localhost:PORT/":"https://storage.example/report-1"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"http://localhost:PORT/": "https://storage.example/report-1"}, links)

	_, err = LoadLinks(writeFile(t, dir, "bad.json", `["not","a","map"]`))
	assert.Error(t, err)
}
