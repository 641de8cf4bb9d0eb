package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/fuzzymatch/internal/config"
	"github.com/stacklok/fuzzymatch/internal/document"
	"github.com/stacklok/fuzzymatch/internal/filtering"
	"github.com/stacklok/fuzzymatch/internal/filtering/mocks"
	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

const registryYAML = `registry:
  servers:
    postgres:
      image: postgres:16
    postgres-exporter:
      image: exporter:1
    mysql:
      image: mysql:8
`

func runFilterCmd(t *testing.T, service filtering.FilterService, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newFilterCmd(newViper(), service)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFilterCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	servers := writeFile(t, dir, "servers.yaml", "[postgres-client, postgres-server, mysql-experimental, redis]\n")
	pipeline := writeFile(t, dir, "pipeline.yaml", `matchTypes: [EXACT, PREFIX]
steps:
  - include: [postgres, mysql]
  - exclude: ["*-experimental"]
    matchTypes: [GLOB]
`)

	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "include falls back to prefix",
			args:     []string{servers, "--include", "postgres"},
			expected: "- postgres-client\n- postgres-server\n",
		},
		{
			name:     "exclude with explicit chain",
			args:     []string{servers, "-e", "*-client,*-server", "-m", "GLOB"},
			expected: "- mysql-experimental\n- redis\n",
		},
		{
			name:     "pipeline file",
			args:     []string{servers, "--config", pipeline},
			expected: "- postgres-client\n- postgres-server\n",
		},
		{
			name:     "pipeline file then flags",
			args:     []string{servers, "--config", pipeline, "--exclude", "postgres-client", "-m", "EXACT"},
			expected: "[postgres-server]\n",
		},
		{
			name:     "standard input",
			stdin:    "[apple, banana, cherry]",
			args:     []string{"--exclude", "ana", "--match-type", "CONTAINS"},
			expected: "- apple\n- cherry\n",
		},
		{
			name:     "no patterns echoes the collection",
			stdin:    "[apple, banana]",
			args:     []string{"-"},
			expected: "- apple\n- banana\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := runFilterCmd(t, filtering.NewDefaultFilterService(), tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFilterCmd_SelectMapping(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "registry.yaml", registryYAML)

	out, err := runFilterCmd(t, filtering.NewDefaultFilterService(), "",
		path, "--select", "registry.servers", "--include", "postgres", "-m", "EXACT")
	require.NoError(t, err)

	var result map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, map[string]map[string]string{"postgres": {"image": "postgres:16"}}, result)

	out, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "",
		path, "-s", "registry.servers", "-e", "postgres", "-m", "PREFIX", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"mysql\": {\n    \"image\": \"mysql:8\"\n  }\n}\n", out)
}

func TestFilterCmd_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scalar := writeFile(t, dir, "scalar.yaml", "42\n")
	empty := writeFile(t, dir, "empty.yaml", "")
	list := writeFile(t, dir, "list.yaml", "[a]\n")
	badPipeline := writeFile(t, dir, "bad.yaml", "steps: []\n")

	_, err := runFilterCmd(t, filtering.NewDefaultFilterService(), "", scalar, "-i", "a")
	var unsupported *fuzzy.UnsupportedContainerTypeError
	require.ErrorAs(t, err, &unsupported)

	_, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "", empty, "-i", "a")
	require.ErrorIs(t, err, document.ErrEmpty)

	_, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "", list, "-i", "a", "-m", "FUZZY")
	var invalid *fuzzy.InvalidMatchStrategyError
	require.ErrorAs(t, err, &invalid)

	_, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "", list, "-o", "xml")
	require.ErrorContains(t, err, "unsupported output format")

	_, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "", list, "-c", badPipeline)
	require.ErrorContains(t, err, "failed to load configuration")

	_, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "", list, "-s", "missing")
	require.ErrorIs(t, err, document.ErrNoSelection)

	_, err = runFilterCmd(t, filtering.NewDefaultFilterService(), "", list, "extra", "args")
	require.Error(t, err)
}

func TestFilterCmd_PassesPipelineToService(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockFilterService(ctrl)
	service.EXPECT().
		Apply(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *fuzzy.Container, cfg *config.Config) (*fuzzy.Container, error) {
			require.Len(t, cfg.Steps, 2)
			assert.Equal(t, []string{"a"}, cfg.Steps[0].Include)
			assert.Equal(t, []string{"b"}, cfg.Steps[1].Exclude)
			assert.Equal(t, []string{"GLOB"}, cfg.Steps[1].MatchTypes)
			assert.Equal(t, 3, c.Len())
			return c.IncludeWith([]fuzzy.MatchType{fuzzy.Exact}, "c")
		})

	out, err := runFilterCmd(t, service, "[a, b, c]", "-i", "a", "-e", "b", "-m", "GLOB")
	require.NoError(t, err)
	assert.Equal(t, "[c]\n", out)
}

func TestFilterCmd_NoPipelineSkipsValidation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockFilterService(ctrl)
	service.EXPECT().
		Apply(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, c *fuzzy.Container, _ *config.Config) (*fuzzy.Container, error) {
			return c, nil
		})

	_, err := runFilterCmd(t, service, "{b: 1, a: 2}", "-o", "json")
	require.NoError(t, err)
}
