package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/fkesheh/mcpsh/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check mcpsh configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// 1. Config resolution
		path, source, err := config.Resolve(flagConfig)
		if err != nil {
			fmt.Fprintf(out, "Config:  FAIL (cannot resolve path: %v)\n", err)
			return fmt.Errorf("some checks failed")
		}
		if source == config.SourceMissing {
			fmt.Fprintf(out, "Config:  FAIL (no config found, run 'mcpsh init')\n")
			return fmt.Errorf("some checks failed")
		}

		// 2. Config parse
		servers, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(out, "Config:  FAIL (%v)\n", err)
			return fmt.Errorf("some checks failed")
		}
		fmt.Fprintf(out, "Config:  OK (%d servers, %s, %s)\n", len(servers), path, source)

		// 3. Server commands in PATH
		for _, name := range serverNames(servers) {
			sc := servers[name]
			if _, err := exec.LookPath(sc.Command); err != nil {
				fmt.Fprintf(out, "Server %s: WARN (command %q not found in PATH)\n", name, sc.Command)
			} else {
				fmt.Fprintf(out, "Server %s: OK (%s)\n", name, sc.Command)
			}
		}

		// 4. Log directory
		logDir, err := config.LogDir()
		if err == nil {
			err = config.EnsureDir(logDir, 0700)
		}
		if err != nil {
			fmt.Fprintf(out, "Logs:    WARN (cannot create log dir: %v)\n", err)
		} else {
			fmt.Fprintf(out, "Logs:    OK (%s)\n", logDir)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
