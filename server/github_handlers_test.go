package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/github"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGithubRepos(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat/repos":
			w.Write([]byte(`[{"id": 1, "name": "hello-world"}]`))
		case "/users/nobody/repos":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer stub.Close()

	app, srv := setupTestApp(t)
	srv.github = github.NewClientWithBaseURL("", stub.URL)

	t.Run("Known user", func(t *testing.T) {
		status, repos := jsonRequestList(t, app, "GET", "/api/profile/github/octocat", nil, "")
		require.Equal(t, fiber.StatusOK, status)
		require.Len(t, repos, 1)
		assert.Equal(t, "hello-world", repos[0].(map[string]any)["name"])
	})

	t.Run("Unknown user is an explicit 404", func(t *testing.T) {
		status, body := jsonRequest(t, app, "GET", "/api/profile/github/nobody", nil, "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.NotNil(t, body["error"])
	})

	t.Run("Upstream failure is an explicit 502", func(t *testing.T) {
		status, body := jsonRequest(t, app, "GET", "/api/profile/github/broken", nil, "")
		assert.Equal(t, fiber.StatusBadGateway, status)
		assert.Equal(t, "UPSTREAM_ERROR", body["code"])
	})
}
