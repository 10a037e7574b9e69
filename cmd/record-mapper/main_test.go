package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/internal/bench"
	"record-mapper/internal/config"
	"record-mapper/internal/logging"
	"record-mapper/internal/profile"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, cfg config.Config, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), args, cfg, strings.NewReader(stdin), &stdout, &stderr)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func quiet() config.Config {
	return config.Config{Log: logging.Config{Level: "error"}}
}

func TestRun_NoArgs(t *testing.T) {
	res := runCLI(t, quiet(), "")

	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "Commands:")
}

func TestRun_UnknownCommand(t *testing.T) {
	res := runCLI(t, quiet(), "", "serve")

	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, `unknown command "serve"`)
	assert.NotContains(t, res.stderr, "did you mean")

	res = runCLI(t, quiet(), "", "chek")

	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, `unknown command "chek" (did you mean "check"?)`)
}

func TestRun_Help(t *testing.T) {
	res := runCLI(t, quiet(), "", "help")

	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, "record-mapper")
}

func TestMap_Stdin(t *testing.T) {
	res := runCLI(t, quiet(), `[{"el1":"a","el2":"b","i":5},{"el1":"x","el2":"y","i":-3}]`, "map")

	require.Equal(t, exitOK, res.code, res.stderr)
	assert.JSONEq(t, `[{"map1":"a","map2":"b","max":5},{"map1":"x","map2":"y","max":0}]`, res.stdout)
}

func TestMap_FileWithProfile(t *testing.T) {
	dir := t.TempDir()

	in := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(in, []byte("- {name: a, code: b, amount: -1}\n"), 0o644))

	prof := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(prof, []byte("style: typed\nfields: {el1: name, el2: code, i: amount}\n"), 0o644))

	out := filepath.Join(dir, "out.json")

	res := runCLI(t, quiet(), "", "map", "-profile", prof, "-out-format", "json", "-o", out, in)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"map1":"a","map2":"b","max":0}]`, string(data))
}

func TestMap_ProfileFromEnvironmentAndWorkers(t *testing.T) {
	dir := t.TempDir()
	prof := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(prof, []byte("fields: {i: n}\n"), 0o644))

	cfg := quiet()
	cfg.Profile = prof

	res := runCLI(t, cfg, `[{"el1":1,"el2":2,"n":0},{"el1":3,"el2":4,"n":-1}]`, "map", "-workers", "2")

	require.Equal(t, exitOK, res.code, res.stderr)
	assert.JSONEq(t, `[{"map1":1,"map2":2,"max":0},{"map1":3,"map2":4,"max":0}]`, res.stdout)
}

func TestMap_Failures(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
	}{
		{name: "missing field", stdin: `[{"el1":"a"}]`, args: []string{"map"}, code: exitError},
		{name: "not an array", stdin: `{}`, args: []string{"map"}, code: exitError},
		{name: "bad format", stdin: `[]`, args: []string{"map", "-format", "xml"}, code: exitError},
		{name: "missing input", args: []string{"map", "does-not-exist.json"}, code: exitError},
		{name: "two inputs", args: []string{"map", "a.json", "b.json"}, code: exitUsage},
		{name: "bad flag", args: []string{"map", "-nope"}, code: exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, quiet(), tt.stdin, tt.args...)

			assert.Equal(t, tt.code, res.code)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestMap_LogsFailure(t *testing.T) {
	res := runCLI(t, quiet(), `[{"el1":"a","el2":"b"}]`, "map")

	require.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "command failed")
	assert.Contains(t, res.stderr, "missing field")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("style: typed\n"), 0o644))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("style: csv\nnan: drop\n"), 0o644))

	res := runCLI(t, quiet(), "", "check", good)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, good+": ok")

	res = runCLI(t, quiet(), "", "check", good, bad)
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stdout, "unknown_style")
	assert.Contains(t, res.stdout, "unknown_nan_policy")

	res = runCLI(t, quiet(), "", "check")
	assert.Equal(t, exitUsage, res.code)
}

func TestInitProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	res := runCLI(t, quiet(), "", "init-profile", path)
	require.Equal(t, exitOK, res.code, res.stderr)

	p, err := profile.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, profile.Default(), p)

	res = runCLI(t, quiet(), "", "init-profile", path)
	assert.Equal(t, exitError, res.code)

	res = runCLI(t, quiet(), "", "init-profile", "-force", path)
	assert.Equal(t, exitOK, res.code)
}

func TestBench(t *testing.T) {
	res := runCLI(t, quiet(), "", "bench", "-warmup", "1", "-iterations", "2", "-size", "10", "-json")
	require.Equal(t, exitOK, res.code, res.stderr)

	var reports []bench.Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &reports))
	require.Len(t, reports, len(bench.AllCases))

	res = runCLI(t, quiet(), "", "bench", "-warmup", "0", "-iterations", "1", "-cases", "typed, parallel")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "CASE")
	assert.Contains(t, res.stdout, "typed")
	assert.Contains(t, res.stdout, "parallel")
	assert.NotContains(t, res.stdout, "document")

	res = runCLI(t, quiet(), "", "bench", "-cases", "nope")
	assert.Equal(t, exitError, res.code)

	res = runCLI(t, quiet(), "", "bench", "-size", "-1")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "size must not be negative")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Nil(t, splitList(""))
}
