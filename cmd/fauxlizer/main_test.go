package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodFile = "experiment_name,sample_id,fauxness,category_guess\n" +
	"E1,1,0.25,real\n" +
	"E2,2,0.75,fake\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.faux")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes a fresh root command and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_SummaryOnly(t *testing.T) {
	out, _, err := run(t, writeFile(t, goodFile))
	require.NoError(t, err)

	assert.Equal(t, `{"return_code":"SUCCESS","payload":"","extras":{"rows":2,"fauxness_range":[0.25,0.75]}}`+"\n", out)
}

func TestRoot_Row(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "json",
			args: []string{"-l", "1", "-f", "JSON"},
			want: `{"experiment_name":"E2","sample_id":2,"fauxness":0.75,"category_guess":"fake"}` + "\n",
		},
		{
			name: "csv",
			args: []string{"--linenum", "0", "--format", "CSV"},
			want: "\"experiment_name\",\"sample_id\",\"fauxness\",\"category_guess\"\r\n\"E1\",1,0.25,\"real\"\r\n",
		},
		{
			name: "no format prints the row",
			args: []string{"-l", "0"},
			want: "{experiment_name: E1, sample_id: 1, fauxness: 0.25, category_guess: real}\n",
		},
		{
			name: "index past the end",
			args: []string{"-l", "2", "-f", "JSON"},
			want: "Invalid argument for line number.\n",
		},
		{
			name: "negative index",
			args: []string{"--linenum=-1"},
			want: "Invalid argument for line number.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, append([]string{writeFile(t, goodFile)}, tt.args...)...)
			require.NoError(t, err)

			summary, rest, ok := strings.Cut(out, "\n")
			require.True(t, ok, "output %q", out)
			assert.Contains(t, summary, `"return_code":"SUCCESS"`)
			assert.Equal(t, tt.want, rest)
		})
	}
}

func TestRoot_FailureIgnoresLineNumber(t *testing.T) {
	path := writeFile(t, "experiment_name,sample_id,fauxness,category_guess\nE1,1,1.5,real\n")

	out, _, err := run(t, path, "-l", "0", "-f", "JSON")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"return_code":"FAUXNESS_OUT_OF_RANGE"`)
}

func TestRoot_MissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.faux")

	out, _, err := run(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, `"return_code":"FILE_DOES_NOT_EXIST"`)
}

func TestRoot_UsageErrors(t *testing.T) {
	_, _, err := run(t)
	assert.Error(t, err, "file argument is required")

	_, _, err = run(t, writeFile(t, goodFile), "-l", "one")
	assert.Error(t, err)

	_, _, err = run(t, writeFile(t, goodFile), "--log-level", "loud")
	assert.ErrorContains(t, err, "--log-level")
}

func TestRoot_LogsGoToStderr(t *testing.T) {
	out, errOut, err := run(t, writeFile(t, goodFile), "--log-level", "info", "--log-format", "json")
	require.NoError(t, err)

	assert.NotContains(t, out, "run_id")
	assert.Contains(t, errOut, `"run_id"`)
	assert.Contains(t, errOut, `"return_code":"SUCCESS"`)
}

func TestRoot_DebugIncludesValidatorLines(t *testing.T) {
	path := writeFile(t, "name,id,score\nE1,1,0.5\n")

	out, errOut, err := run(t, path, "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, out, `"return_code":"INVALID_HEADERS"`)
	assert.Contains(t, errOut, "header rejected")
	assert.Contains(t, errOut, "file validated")
}

func TestRoot_WarnHidesDebug(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	path := writeFile(t, "name,id,score\nE1,1,0.5\n")

	_, errOut, err := run(t, path)
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "mapped error",
			err:  fmt.Errorf("stat data.faux: %w", fs.ErrPermission),
			want: "The data file could not be read (Code: FILE006). Check the file permissions and try again",
		},
		{
			name: "usage error stays raw",
			err:  errors.New("accepts 1 arg(s), received 0"),
			want: "accepts 1 arg(s), received 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorText(tt.err))
		})
	}
}
