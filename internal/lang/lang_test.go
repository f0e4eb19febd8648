package lang

import "testing"

func TestForExtension(t *testing.T) {
	spec := ForExtension(".py")
	if spec == nil {
		t.Fatal("expected spec for .py")
	}
	if spec.Language != Python {
		t.Errorf("expected python, got %s", spec.Language)
	}
	if spec.ConstructorName != "__init__" {
		t.Errorf("unexpected constructor name: %s", spec.ConstructorName)
	}
	if ForExtension(".rs") != nil {
		t.Error("expected nil for unsupported extension")
	}
}

func TestForLanguage(t *testing.T) {
	spec := ForLanguage(Python)
	if spec == nil {
		t.Fatal("expected spec for python")
	}
	if spec.ModuleNodeType != "module" {
		t.Errorf("unexpected module node type: %s", spec.ModuleNodeType)
	}
}
