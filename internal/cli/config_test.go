package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-subalign/internal/cli"
	"github.com/alnah/go-subalign/internal/config"
)

func TestConfigCmdPrintsEffectiveTOML(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Split.Model = "gpt-4o"

	var stdout, stderr bytes.Buffer
	env := cli.NewEnv(
		cli.WithStdout(&stdout),
		cli.WithStderr(&stderr),
		cli.WithConfigLoader(&fakeConfigLoader{cfg: cfg, loaded: true}),
	)

	cmd := cli.ConfigCmd(env)
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "[split]") || !strings.Contains(out, "gpt-4o") {
		t.Errorf("stdout missing split section:\n%s", out)
	}
	if !strings.Contains(out, "[align]") || !strings.Contains(out, "[logging]") {
		t.Errorf("stdout missing sections:\n%s", out)
	}
	if !strings.Contains(stderr.String(), "loaded from") {
		t.Errorf("stderr missing source note: %q", stderr.String())
	}
}

func TestConfigCmdReportsDefaults(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := cli.NewEnv(
		cli.WithStdout(&stdout),
		cli.WithStderr(&stderr),
		cli.WithConfigLoader(&fakeConfigLoader{cfg: config.Default()}),
	)

	cmd := cli.ConfigCmd(env)
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(stderr.String(), "built-in defaults") {
		t.Errorf("stderr missing defaults note: %q", stderr.String())
	}
}
