package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version {
		t.Fatalf("version output %q, want %q", got, version)
	}
}

func TestServeRequiresSecret(t *testing.T) {
	t.Setenv("CRM_JWT_SECRET", "")
	rootCmd.SetArgs([]string{"serve", "--port", "0"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "jwt.secret") {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestMigrateCreatesSchema(t *testing.T) {
	t.Setenv("CRM_DB_DSN", t.TempDir()+"/crm.db")
	rootCmd.SetArgs([]string{"migrate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
