package render

import (
	"context"
	"strings"
	"testing"
)

func TestPlantUMLGeneratorRunsCommand(t *testing.T) {
	// "cat" echoes stdin back to stdout, standing in for a real renderer.
	g := NewPlantUMLGenerator([]string{"cat"}, 5)
	out, err := g.Generate(context.Background(), "@startuml\nA -> B\n@enduml")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "@startuml") {
		t.Errorf("expected piped-through content, got %q", out)
	}
}

func TestPlantUMLGeneratorMissingCommand(t *testing.T) {
	g := NewPlantUMLGenerator([]string{"this-binary-does-not-exist-techdocs"}, 5)
	_, err := g.Generate(context.Background(), "source")
	if err == nil {
		t.Fatal("expected an error for a missing renderer binary")
	}
	if _, ok := err.(*SubprocessError); !ok {
		t.Errorf("expected *SubprocessError, got %T", err)
	}
}

func TestPlantUMLGeneratorNoCommandConfigured(t *testing.T) {
	g := NewPlantUMLGenerator(nil, 5)
	_, err := g.Generate(context.Background(), "source")
	if err == nil {
		t.Fatal("expected an error when no command is configured")
	}
}
