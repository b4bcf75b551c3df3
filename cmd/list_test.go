package cmd

import (
	"testing"

	m "crycurate/internal/model"
)

func TestListCmd_DefaultsToRecursiveCwd(t *testing.T) {
	fake := withFakeWorkflow(t)

	if err := executeCommand(t, "list"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if fake.listArgs == nil {
		t.Fatal("List was not called")
	}

	if len(fake.listArgs.Paths) != 1 || fake.listArgs.Paths[0] != m.Path("./...") {
		t.Fatalf("Paths = %v", fake.listArgs.Paths)
	}
}

func TestListCmd_ExcludeFlag(t *testing.T) {
	fake := withFakeWorkflow(t)

	if err := executeCommand(t, "list", "-x", "generated", "./specs"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(fake.listArgs.Exclude) != 1 || fake.listArgs.Exclude[0] != "generated" {
		t.Fatalf("Exclude = %v", fake.listArgs.Exclude)
	}
}
