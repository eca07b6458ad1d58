package appshell

import (
	"context"
	"testing"

	"foldprep/internal/clibase"
)

func TestExitCode(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	for _, tc := range []struct {
		ctx  context.Context
		in   int
		want int
	}{
		{live, clibase.ExitOK, clibase.ExitOK},
		{live, clibase.ExitUsage, clibase.ExitUsage},
		{done, clibase.ExitOK, clibase.ExitCancelled},
		{done, clibase.ExitIO, clibase.ExitIO},
	} {
		if got := exitCode(tc.ctx, tc.in); got != tc.want {
			t.Errorf("exitCode(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
