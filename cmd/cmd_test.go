package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := func(cmds []*cobra.Command) []string {
		var out []string
		for _, c := range cmds {
			out = append(out, c.Name())
		}
		return out
	}

	assert.Subset(t, names(rootCmd.Commands()), []string{"score", "analyze", "compare", "check", "batch", "metrics", "version"})
	assert.ElementsMatch(t, []string{"sensitivity", "components", "normalization", "all"}, names(analyzeCmd.Commands()))
}

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name    string
		cmd     *cobra.Command
		args    []string
		wantErr bool
	}{
		{name: "score needs a record", cmd: scoreCmd, args: nil, wantErr: true},
		{name: "score many", cmd: scoreCmd, args: []string{"a.json", "b.json"}},
		{name: "compare one", cmd: compareCmd, args: []string{"a.json"}, wantErr: true},
		{name: "compare two", cmd: compareCmd, args: []string{"a.json", "b.json"}},
		{name: "compare three", cmd: compareCmd, args: []string{"a.json", "b.json", "c.json"}, wantErr: true},
		{name: "sensitivity two", cmd: analyzeSensitivityCmd, args: []string{"a.json", "b.json"}, wantErr: true},
		{name: "analyze all many", cmd: analyzeAllCmd, args: []string{"a.json", "b.json", "c.json"}},
		{name: "metrics takes none", cmd: metricsCmd, args: []string{"a.json"}, wantErr: true},
		{name: "batch dir", cmd: batchCmd, args: []string{"records"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Args(tt.cmd, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommandFlags(t *testing.T) {
	for _, flag := range []string{"output", "output-file", "entropy-strategy", "steepness", "z-clip", "workers", "verbose", "config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.NotNil(t, analyzeCmd.PersistentFlags().Lookup("variation"))
	assert.NotNil(t, checkCmd.Flags().Lookup("min-score"))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.Contains(t, buf.String(), "aem CLI")
	assert.Contains(t, buf.String(), "Version: "+version)
	assert.Contains(t, buf.String(), "Entropy:   inverse")
	assert.Regexp(t, `program_expense_ratio\s+0\.30`, buf.String())
	assert.Regexp(t, `transparency\s+0\.10`, buf.String())
}
