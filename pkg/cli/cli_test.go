package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/cli"
	"github.com/m-mizutani/gt"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		append([]string{"caucaconecta", "--log-format", "json", "--log-level", "error"}, args...), &buf)
	return buf.String(), err
}

func TestProjectCommand(t *testing.T) {
	t.Run("north-west corner", func(t *testing.T) {
		out, err := runCLI(t, "project", "--lat", "3.35", "--lng", "-77.95")
		gt.NoError(t, err)
		gt.Equal(t, out, "x=0.00% y=0.00% inside=true\n")
	})

	t.Run("outside is clamped", func(t *testing.T) {
		out, err := runCLI(t, "project", "--lat", "4.6", "--lng", "-74.1")
		gt.NoError(t, err)
		gt.Equal(t, out, "x=100.00% y=0.00% inside=false\n")
	})

	t.Run("margin", func(t *testing.T) {
		out, err := runCLI(t, "project", "--lat", "4.6", "--lng", "-74.1", "--bbox-margin", "5")
		gt.NoError(t, err)
		gt.Equal(t, out, "x=95.00% y=5.00% inside=false\n")
	})

	t.Run("lat is required", func(t *testing.T) {
		_, err := runCLI(t, "project", "--lng", "-76")
		gt.Error(t, err)
	})
}

func TestRegionsCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, "regions")
		gt.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		gt.Equal(t, len(lines), 31)
		gt.S(t, out).Contains("Guapi")
	})

	t.Run("known name", func(t *testing.T) {
		out, err := runCLI(t, "regions", "Guapi")
		gt.NoError(t, err)
		gt.S(t, out).Contains("2.5667,-77.8833")
		gt.False(t, strings.Contains(out, "fallback"))
	})

	t.Run("unknown name", func(t *testing.T) {
		out, err := runCLI(t, "regions", "Medellín")
		gt.NoError(t, err)
		gt.S(t, out).Contains("Popayán")
		gt.S(t, out).Contains("fallback")
	})
}

func TestInvalidLogFormat(t *testing.T) {
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		[]string{"caucaconecta", "--log-format", "xml", "regions"}, &buf)
	gt.Error(t, err)
}
