package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/machash"
	"github.com/soypat/machash/hashcheck"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, logs bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), logs.String(), err
}

func TestVerifyCommand(t *testing.T) {
	out, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "verify")
	require.NoError(t, err)
	require.Contains(t, out, "Checking 1f52419cb6af: Calced: 2c, Expected 2c, Result: true. HTH = 0x00001000, HTL = 0x00000000\n")
	require.Contains(t, out, "Checking a00a98000045: Calced: 07, Expected 07, Result: true. HTH = 0x00000000, HTL = 0x00000080\n")
	require.Contains(t, out, "Checking 534341000013: Calced: 29, Expected 29, Result: true. HTH = 0x00000200, HTL = 0x00000000\n")
	require.True(t, strings.HasSuffix(out, "Overall Test Result: true\n"))
}

func mismatchedVectors() []hashcheck.Vector {
	vs := hashcheck.KnownVectors()
	vs[2].Expected = 0x2a
	return vs
}

func TestVerifyCommandMismatch(t *testing.T) {
	out, logs, err := execute(t, newRootCmd(mismatchedVectors), "verify")
	require.ErrorIs(t, err, errVerifyFailed)
	require.Contains(t, out, "Calced: 29, Expected 2a, Result: false.")
	require.True(t, strings.HasSuffix(out, "Overall Test Result: false\n"), "got %q", out)
	require.Contains(t, logs, "vector mismatch")
}

func TestRunExitCode(t *testing.T) {
	tests := []struct {
		name    string
		vectors func() []hashcheck.Vector
		args    []string
		want    int
	}{
		{name: "known vectors", vectors: hashcheck.KnownVectors, args: []string{"verify"}, want: 0},
		{name: "mismatch", vectors: mismatchedVectors, args: []string{"verify"}, want: 1},
		{name: "collisions", vectors: hashcheck.KnownVectors, args: []string{"collisions", "--loglevel", "error"}, want: 0},
		{name: "bad prefix", vectors: hashcheck.KnownVectors, args: []string{"collisions", "--prefix", "e852"}, want: 1},
		{name: "unknown command", vectors: hashcheck.KnownVectors, args: []string{"frobnicate"}, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, logs bytes.Buffer
			code := run(newRootCmd(tc.vectors), tc.args, &out, &logs)
			require.Equal(t, tc.want, code)
			if tc.name == "bad prefix" {
				require.Contains(t, logs.String(), "invalid input")
			}
		})
	}
}

func TestCollisionsCommand(t *testing.T) {
	out, logs, err := execute(t, newRootCmd(hashcheck.KnownVectors), "collisions", "--workers", "4")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 64)
	require.Equal(t, " 0: 1024", lines[0])
	require.Equal(t, "63: 1024", lines[63])
	require.Contains(t, logs, "enumeration done")
}

func TestCollisionsCommandBuckets(t *testing.T) {
	out, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "collisions", "--prefix", "e8:52:43:41", "--bucket", "63", "--loglevel", "error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 64+1024)
	require.Equal(t, "00 42 -> 3f", lines[64])
	require.Equal(t, "00 5b -> 3f", lines[65])
}

func TestCollisionsCommandInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"collisions", "--prefix", "e85243"},
		{"collisions", "--prefix", "zz524341"},
		{"collisions", "--bucket", "64"},
	} {
		_, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), args...)
		require.ErrorIs(t, err, machash.ErrInvalidInput, "%v", args)
	}
}

func TestCollisionsPrefixFromEnv(t *testing.T) {
	t.Setenv("MACHASH_PREFIX", "e852")
	_, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "collisions")
	require.ErrorIs(t, err, machash.ErrInvalidInput)

	// Command line takes precedence over environment.
	_, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "collisions", "--prefix", "8e524341", "--loglevel", "error")
	require.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "machash.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("prefix: e85243\nloglevel: error\n"), 0o644))
	_, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "--config", cfg, "collisions")
	require.ErrorIs(t, err, machash.ErrInvalidInput)

	_, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "--config", filepath.Join(dir, "missing.yaml"), "verify")
	require.Error(t, err)
}

func TestIndexCommand(t *testing.T) {
	out, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "index", "1f:52:41:9c:b6:af", "A0-0A-98-00-00-45", "53:43:41:00:00:13")
	require.NoError(t, err)
	const want = "1f:52:41:9c:b6:af -> 2c. HTH = 0x00001000, HTL = 0x00000000\n" +
		"a0:0a:98:00:00:45 -> 07. HTH = 0x00000000, HTL = 0x00000080\n" +
		"53:43:41:00:00:13 -> 29. HTH = 0x00000200, HTL = 0x00000000\n" +
		"Filter: HTH = 0x00001200, HTL = 0x00000080\n"
	require.Equal(t, want, out)
}

func TestIndexCommandInvalid(t *testing.T) {
	_, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "index", "not-a-mac")
	require.ErrorIs(t, err, machash.ErrInvalidInput)

	// EUI-64 parses but is not a 6 byte address.
	_, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "index", "02:00:5e:10:00:00:00:01")
	require.ErrorIs(t, err, machash.ErrInvalidInput)

	_, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "index")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "version")
	require.NoError(t, err)
	require.Equal(t, "machash dev (unknown_commit)\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "--loglevel", "loud", "verify")
	require.Error(t, err)
}

func TestIndexCommandFrames(t *testing.T) {
	const (
		hdrUnicast   = "1f52419cb6af" + "8e5243411005" + "0800"
		hdrBroadcast = "ffffffffffff" + "8e5243411005" + "0806"
	)
	out, _, err := execute(t, newRootCmd(hashcheck.KnownVectors), "index", "1f:52:41:9c:b6:af",
		"--frame", hdrUnicast, "--frame", hdrBroadcast)
	require.NoError(t, err)
	const want = "1f:52:41:9c:b6:af -> 2c. HTH = 0x00001000, HTL = 0x00000000\n" +
		"Filter: HTH = 0x00001000, HTL = 0x00000000\n" +
		"frame 0: 1f:52:41:9c:b6:af -> 2c, hash filter: pass\n" +
		"frame 1: ff:ff:ff:ff:ff:ff -> 00, hash filter: drop\n"
	require.Equal(t, want, out)

	// Frames alone are checked against an empty filter.
	out, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "index", "--frame", hdrUnicast)
	require.NoError(t, err)
	require.Contains(t, out, "frame 0: 1f:52:41:9c:b6:af -> 2c, hash filter: drop\n")

	_, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "index", "--frame", "1f52419cb6af")
	require.ErrorIs(t, err, machash.ErrShortFrame)

	_, _, err = execute(t, newRootCmd(hashcheck.KnownVectors), "index", "--frame", "zz")
	require.ErrorIs(t, err, machash.ErrInvalidInput)
}
