package database

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMigrateLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := migrateLogger{logger: zap.New(core)}

	l.Printf("Start buffering %d/u %s\n", 1, "init")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	if got := entries[0].Message; got != "Start buffering 1/u init" {
		t.Errorf("message = %q", got)
	}
	if l.Verbose() {
		t.Error("verbose migrate output should stay off")
	}
}
