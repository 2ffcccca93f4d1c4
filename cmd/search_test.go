package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb40development/bim-portal-sub001/config"
)

const testProjectGUID = "80730a51-a953-4a80-9eaa-debfab31f6e9"

// pointCmdAt directs every command built during the test at the given server
// and clears any credentials from the surrounding environment.
func pointCmdAt(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv(config.EnvBaseURL, serverURL)
	t.Setenv(config.EnvUsername, "")
	t.Setenv(config.EnvPassword, "")
}

func TestSearchCmd_ListsProjects(t *testing.T) {
	var gotTerm string
	mux := http.NewServeMux()
	mux.HandleFunc("/aia/api/v1/public/aiaProject", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotTerm = body["searchString"]
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`[{"guid":"` + testProjectGUID + `","name":"Autobahn A7","description":"Ausbau\nNord"}]`))
		require.NoError(t, err)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	pointCmdAt(t, server.URL)

	output, err := captureCombinedOutput(createRootCmd(), "search", "project", "--term", "Autobahn")

	require.NoError(t, err)
	assert.Equal(t, "Autobahn", gotTerm)
	assert.Contains(t, output, testProjectGUID)
	assert.Contains(t, output, "Autobahn A7")
	assert.NotContains(t, output, "Ausbau\nNord", "line breaks are stripped from table cells")
}

func TestSearchCmd_DefaultsEmptyPropertyTerm(t *testing.T) {
	var gotTerm string
	mux := http.NewServeMux()
	mux.HandleFunc("/merkmale/api/v1/public/property", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotTerm = body["searchString"]
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`[{"guid":"` + testProjectGUID + `","name":"Hoehe","dataType":"double"}]`))
		require.NoError(t, err)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	pointCmdAt(t, server.URL)

	output, err := captureCombinedOutput(createRootCmd(), "search", "property")

	require.NoError(t, err)
	assert.Equal(t, "a", gotTerm, "the property endpoints reject an empty search string")
	assert.Contains(t, output, "Hoehe")
}

func TestSearchCmd_NoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/aia/api/v1/public/loin", serveJSON(t, []any{}))
	server := httptest.NewServer(mux)
	defer server.Close()
	pointCmdAt(t, server.URL)

	output, err := captureCombinedOutput(createRootCmd(), "search", "loin")

	require.NoError(t, err)
	assert.Contains(t, output, "No resources found")
}

func TestSearchCmd_UnknownKind(t *testing.T) {
	// No server is needed; the kind is rejected before any request is made.
	pointCmdAt(t, "http://127.0.0.1:0")

	output, err := captureCombinedOutput(createRootCmd(), "search", "documents")

	require.NoError(t, err)
	assert.Contains(t, output, "Unknown resource kind")
}

func TestSearchCmd_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/aia/api/v1/public/aiaProject", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	pointCmdAt(t, server.URL)

	output, err := captureCombinedOutput(createRootCmd(), "search", "project")

	require.NoError(t, err)
	assert.Contains(t, output, "Error: Failed to search the BIM portal")
}
