package cli

import (
	"bytes"
	"testing"
)

// setupTestServices installs scores as the App and restores global state
// when the test ends.
func setupTestServices(t *testing.T, scores *mockScoreService) {
	t.Helper()
	oldApp, oldBuilder, oldCfg := app, builder, cfg
	if scores != nil {
		app = &App{Scores: scores}
	} else {
		app = nil
	}
	t.Cleanup(func() {
		app, builder, cfg = oldApp, oldBuilder, oldCfg
		cfgFile = ""
		scoreText, scoreURL, scoreGCSURI = "", "", ""
		scoreJSON, extractJSON = false, false
	})
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

