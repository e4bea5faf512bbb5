package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"localllmui/internal/llm"
	"localllmui/internal/logging"
	"localllmui/internal/provision"
	"localllmui/pkg/types"
)

// newCheckCmd reports whether the configured model is present. With --pull a
// missing model is fetched the same way serve would.
func newCheckCmd(f *rootFlags, getenv func(string) string) *cobra.Command {
	var pull bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the configured model in Ollama and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f, getenv)
			if err != nil {
				return err
			}
			// Diagnostics go to stderr so stdout stays machine-readable.
			log, _, err := logging.New(logging.Options{Level: cfg.LogLevel, Stderr: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			rt, client, err := buildRuntime(cfg, log)
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			p := provision.New(rt, log)
			pres := p.Check(cmd.Context(), cfg.Model)
			status := types.ModelStatus{
				Model:    cfg.Model,
				Presence: pres.Kind.String(),
				Probe:    cfg.Probe,
			}
			if pres.Err != nil {
				status.Error = pres.Err.Error()
			}
			var resolveErr error
			if pull {
				_, resolveErr = p.Resolve(cmd.Context(), cfg.Model)
				snap := p.Snapshot()
				status.State = string(snap.State)
				if snap.Err != "" {
					status.Error = snap.Err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(status); err != nil {
				return err
			}
			switch {
			case resolveErr != nil:
				return resolveErr
			case pull:
				return nil
			case pres.Kind != llm.PresenceFound:
				return fmt.Errorf("model %s: %s", cfg.Model, pres.Kind)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pull, "pull", false, "Pull the model when it is not present")
	return cmd
}
