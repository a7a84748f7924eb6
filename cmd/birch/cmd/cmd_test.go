package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// captureRun redirects os.Stdout/os.Stderr around fn and returns what it wrote.
func captureRun(t *testing.T, fn func() error) (stdout, stderr string, runErr error) {
	t.Helper()

	origOut, origErr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout, os.Stderr = outW, errW

	runErr = fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origOut, origErr

	var outBuf, errBuf bytes.Buffer
	io.Copy(&outBuf, outR)
	io.Copy(&errBuf, errR)
	return outBuf.String(), errBuf.String(), runErr
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return 1
}

func TestRunFixtures(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		wantExitCode int
	}{
		{"arithmetic_print", "../../../testdata/fixtures/arithmetic_print.birch", 0},
		{"block_shadowing", "../../../testdata/fixtures/block_shadowing.birch", 0},
		{"closure_counter", "../../../testdata/fixtures/closure_counter.birch", 0},
		{"super_dispatch", "../../../testdata/fixtures/super_dispatch.birch", 0},
		{"constructor_field_binding", "../../../testdata/fixtures/constructor_field_binding.birch", 0},
		{"string_number_type_error", "../../../testdata/fixtures/string_number_type_error.birch", 70},
		{"own_initializer_error", "../../../testdata/fixtures/own_initializer_error.birch", 65},
		{"top_level_return_error", "../../../testdata/fixtures/top_level_return_error.birch", 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := captureRun(t, func() error {
				return runFile(nil, []string{tt.file})
			})

			if got := exitCodeOf(err); got != tt.wantExitCode {
				t.Errorf("exit code = %d, want %d (stdout=%q stderr=%q)", got, tt.wantExitCode, stdout, stderr)
			}

			snaps.MatchSnapshot(t, "stdout", stdout)
			snaps.MatchSnapshot(t, "stderr", stderr)
		})
	}
}
