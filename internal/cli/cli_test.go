package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kiranshivaraju/gitpulse/internal/backend/mock"
	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{
  "profile": {"login": "octocat", "name": "The Octocat"},
  "metrics": {"totalRepos": 8, "filesScanned": 120, "totalBytes": 1536, "totalStars": 42, "totalForks": 3},
  "charts": {"languages": [{"name": "Go", "value": 70}, {"name": "Shell", "value": 30}]},
  "skills": ["Go"],
  "techStackHighlights": ["Docker"]
}`

const aiJSON = `{
  "text_analysis": {"summary": "Strong backend engineer", "strengths": ["APIs"]},
  "numeric_analysis": {"skills": {"Go": 88, "Docs": 40}, "readiness_score": 81},
  "logs": ["Scoring repositories: 8 found"]
}`

func fakeBackend(t *testing.T, profileStatus int, profileBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /analyze", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(profileStatus)
		io.WriteString(w, profileBody)
	})
	mux.HandleFunc("POST /ai/full-analysis", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, aiJSON)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GITPULSE_PORT", "GITPULSE_ENV", "BACKEND_BASE_URL", "PROFILE_TIMEOUT", "AI_TIMEOUT"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyze_Success(t *testing.T) {
	cleanEnv(t)
	srv := fakeBackend(t, http.StatusOK, profileJSON)

	out, err := execute(t, "analyze", "octocat", "--backend", srv.URL)
	require.NoError(t, err)

	for _, want := range []string{
		dashboard.MsgKickstart,
		dashboard.MsgProfileReceived,
		dashboard.MsgSendingToAI,
		"Scoring repositories",
		dashboard.MsgAICompleted,
		"octocat (The Octocat)",
		"1.5 KB",
		"81 / 100",
		"Improve Docs (current score: 40)",
		"Strong backend engineer",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "8 found")
}

func TestAnalyze_UserNotFound(t *testing.T) {
	cleanEnv(t)
	srv := fakeBackend(t, http.StatusNotFound, `{}`)

	out, err := execute(t, "analyze", "ghost", "--backend", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GitHub user not found. Please check the username.")
	assert.Contains(t, out, dashboard.MsgAnalysisFailed)
}

func TestAnalyze_RequiresUsername(t *testing.T) {
	cleanEnv(t)

	_, err := execute(t, "analyze")
	require.Error(t, err)
}

func TestAnalyze_InvalidBackendFlag(t *testing.T) {
	cleanEnv(t)

	_, err := execute(t, "analyze", "octocat", "--backend", "ftp://nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
}

func TestOptionsConfig_FlagsOverrideEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv("BACKEND_BASE_URL", "http://env:5000")
	t.Setenv("AI_TIMEOUT", "30s")

	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	opts.bindFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags([]string{"--backend", "http://flag:5000", "--profile-timeout", "10s"}))

	cfg, err := opts.config(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.ProfileTimeout)
	assert.Equal(t, 30*time.Second, cfg.Backend.AITimeout)
}

func TestOptionsConfig_UnsetFlagsKeepEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv("BACKEND_BASE_URL", "http://env:5000")

	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	opts.bindFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := opts.config(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://env:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 120*time.Second, cfg.Backend.ProfileTimeout)
}

func TestRunAnalyze_PrintsEachLogOnce(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), &out, mock.NewClient(), "octocat", ""))

	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte(dashboard.MsgKickstart)))
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte(dashboard.MsgSendingToAI)))
}

func TestRunAnalyze_BlankUsername(t *testing.T) {
	var out bytes.Buffer
	client := mock.NewClient()
	err := runAnalyze(context.Background(), &out, client, "  ", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username cannot be empty")
	assert.Zero(t, client.ProfileCalls)
}

func TestAnalyze_WritesCharts(t *testing.T) {
	cleanEnv(t)
	srv := fakeBackend(t, http.StatusOK, profileJSON)
	dir := filepath.Join(t.TempDir(), "charts")

	out, err := execute(t, "analyze", "octocat", "--backend", srv.URL, "--charts-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 chart(s)")

	data, err := os.ReadFile(filepath.Join(dir, "languages.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	_, err = os.Stat(filepath.Join(dir, "activity.png"))
	assert.True(t, os.IsNotExist(err))
}
