package ollama

import (
	"context"
	"os"
	"os/exec"
)

// runFunc executes a command and returns its combined output.
type runFunc func(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error)

// runCommand inherits the process environment and appends env on top.
func runCommand(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	return cmd.CombinedOutput()
}
