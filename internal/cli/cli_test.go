package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--help"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", errOut.String())
	}
	output := out.String()
	if !strings.Contains(output, "cotbench <command>") {
		t.Fatalf("expected usage header, got %q", output)
	}
	for _, name := range []string{"run", "validate", "report", "serve"} {
		if !strings.Contains(output, "  "+name+" ") {
			t.Fatalf("expected command %q in output", name)
		}
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run(nil, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"nope"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Unknown command: nope") {
		t.Fatalf("expected unknown command error, got %q", errOut.String())
	}
}

// TestCommandHelp checks both "<cmd> --help" and "help <cmd>".
func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		for _, args := range [][]string{{cmd.Name, "--help"}, {"help", cmd.Name}} {
			var out, errOut bytes.Buffer
			if code := Run(args, &out, &errOut); code != ExitOK {
				t.Fatalf("%v: expected exit %d, got %d", args, ExitOK, code)
			}
			for _, line := range cmd.Usage {
				if !strings.Contains(out.String(), line) {
					t.Fatalf("%v: expected usage line %q", args, line)
				}
			}
		}
	}
}

func TestHelpUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"help", "nope"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
