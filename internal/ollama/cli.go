package ollama

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"localllmui/internal/llm"
)

// CLI probes and pulls models by running the ollama binary. It does not
// implement Invoker; pair it with a Client through llm.Combined.
type CLI struct {
	bin  string
	host string
	run  runFunc
	log  zerolog.Logger
}

var (
	_ llm.Prober = (*CLI)(nil)
	_ llm.Puller = (*CLI)(nil)
)

// NewCLI returns a CLI using bin (default "ollama"). host, when set, is passed
// to the child as OLLAMA_HOST.
func NewCLI(bin, host string, log zerolog.Logger) *CLI {
	if strings.TrimSpace(bin) == "" {
		bin = "ollama"
	}
	return &CLI{bin: bin, host: host, run: runCommand, log: log.With().Str("component", "ollama-cli").Logger()}
}

func (c *CLI) env() map[string]string {
	if c.host == "" {
		return nil
	}
	return map[string]string{"OLLAMA_HOST": c.host}
}

// Presence runs `ollama list <model>` and scans the NAME column.
func (c *CLI) Presence(ctx context.Context, model string) llm.Presence {
	out, err := c.run(ctx, c.env(), c.bin, "list", model)
	if err != nil {
		return llm.Failed(commandError("list", out, err))
	}
	want := NormalizeName(model)
	for _, name := range listedNames(out) {
		if NormalizeName(name) == want {
			return llm.Found()
		}
	}
	return llm.NotFound()
}

// Pull runs `ollama pull <model>`.
func (c *CLI) Pull(ctx context.Context, model string) error {
	c.log.Debug().Str("bin", c.bin).Str("model", model).Msg("running pull")
	out, err := c.run(ctx, c.env(), c.bin, "pull", model)
	if err != nil {
		return fmt.Errorf("pull %s: %w", model, commandError("pull", out, err))
	}
	return nil
}

// listedNames extracts the first column of `ollama list` output, skipping the header.
func listedNames(out []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] == "NAME" {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}

func commandError(op string, out []byte, err error) error {
	msg := strings.TrimSpace(string(out))
	var ee *exec.ExitError
	if errors.As(err, &ee) && msg != "" {
		return fmt.Errorf("ollama %s: exit %d: %s", op, ee.ExitCode(), msg)
	}
	if msg != "" {
		return fmt.Errorf("ollama %s: %w: %s", op, err, msg)
	}
	return fmt.Errorf("ollama %s: %w", op, err)
}
