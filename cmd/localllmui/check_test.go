package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localllmui/internal/ollama/ollamatest"
	"localllmui/pkg/types"
)

func runCheck(t *testing.T, host string, extra ...string) (types.ModelStatus, error) {
	t.Helper()
	root := newRootCmd(envFrom(nil))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	args := append([]string{"check", "--env-file", "", "--ollama-host", host, "--model", "phi3", "--log-level", "off"}, extra...)
	root.SetArgs(args)
	err := root.Execute()

	var st types.ModelStatus
	require.NoError(t, json.Unmarshal(out.Bytes(), &st), "stdout=%q", out.String())
	return st, err
}

func TestCheck_Found(t *testing.T) {
	d := ollamatest.New("phi3:latest")
	st, err := runCheck(t, d.Start(t))
	require.NoError(t, err)
	assert.Equal(t, "phi3", st.Model)
	assert.Equal(t, "found", st.Presence)
	assert.Equal(t, "api", st.Probe)
	assert.Equal(t, 0, d.Pulls())
}

func TestCheck_NotFoundFailsWithoutPulling(t *testing.T) {
	d := ollamatest.New()
	st, err := runCheck(t, d.Start(t))
	require.Error(t, err)
	assert.Equal(t, "not_found", st.Presence)
	assert.Equal(t, 0, d.Pulls())
}

func TestCheck_PullFetchesOnce(t *testing.T) {
	d := ollamatest.New()
	st, err := runCheck(t, d.Start(t), "--pull")
	require.NoError(t, err)
	assert.Equal(t, "not_found", st.Presence)
	assert.Equal(t, "ready", st.State)
	assert.Equal(t, 1, d.Pulls())
}

func TestCheck_ListErrorReported(t *testing.T) {
	d := ollamatest.New()
	d.ListCode = http.StatusInternalServerError
	st, err := runCheck(t, d.Start(t))
	require.Error(t, err)
	assert.Equal(t, "error", st.Presence)
	assert.NotEmpty(t, st.Error)
}
