package index

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/autocontain/autocontain/internal/store"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func indexFixture(t *testing.T, files map[string]string) (*store.Store, int64) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeSource(t, dir, name, content)
	}
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	repoID, err := New(s).IndexRepository(context.Background(), "fixture", dir)
	if err != nil {
		t.Fatalf("IndexRepository: %v", err)
	}
	return s, repoID
}

func TestIndexCounts(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"app.py": `"""App module."""

def main():
    """Entry point."""
    setup()
    run()

def setup():
    pass

class Runner:
    """Runs things."""

    def __init__(self, speed: int):
        self.speed = speed

    def run(self) -> None:
        go()
`,
	})

	// 2 free functions + 2 methods (__init__ and run).
	n, err := s.CountFunctions(repoID)
	if err != nil {
		t.Fatalf("CountFunctions: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 function rows, got %d", n)
	}
	m, err := s.CountClasses(repoID)
	if err != nil {
		t.Fatalf("CountClasses: %v", err)
	}
	if m != 1 {
		t.Errorf("expected 1 class row, got %d", m)
	}
}

func TestMethodsReferenceOwningClass(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"a.py": "class Worker:\n    def work(self):\n        pass\n",
		"b.py": "class Worker:\n    def rest(self):\n        pass\n",
	})

	classes, err := s.ClassesByRepo(repoID)
	if err != nil {
		t.Fatalf("ClassesByRepo: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(classes))
	}
	if classes[0].ID == classes[1].ID {
		t.Fatal("same-named classes must receive distinct ids")
	}

	byFile := map[string]int64{}
	for _, c := range classes {
		byFile[c.FileLocation] = c.ID
	}

	funcs, err := s.FunctionsByRepo(repoID)
	if err != nil {
		t.Fatalf("FunctionsByRepo: %v", err)
	}
	for _, f := range funcs {
		if f.ClassID == nil {
			t.Errorf("method %s missing class id", f.Name)
			continue
		}
		if *f.ClassID != byFile[f.FileLocation] {
			t.Errorf("method %s in %s attributed to class %d, want %d",
				f.Name, f.FileLocation, *f.ClassID, byFile[f.FileLocation])
		}
		if f.RepoID != repoID {
			t.Errorf("method %s has repo %d, want %d", f.Name, f.RepoID, repoID)
		}
	}
}

func TestDuplicateCallsProduceOneEdge(t *testing.T) {
	s, _ := indexFixture(t, map[string]string{
		"dup.py": "def caller():\n    helper()\n    helper()\n    helper()\n",
	})

	deps, err := s.GetDependencies("caller", nil)
	if err != nil {
		t.Fatalf("GetDependencies: %v", err)
	}
	if len(deps) != 1 || deps[0].Name != "helper" {
		t.Errorf("expected exactly one helper edge, got %v", deps)
	}
}

func TestMemberCallsNotRecorded(t *testing.T) {
	s, _ := indexFixture(t, map[string]string{
		"m.py": "def caller():\n    obj.method()\n    plain()\n",
	})

	deps, err := s.GetDependencies("caller", nil)
	if err != nil {
		t.Fatalf("GetDependencies: %v", err)
	}
	if len(deps) != 1 || deps[0].Name != "plain" {
		t.Errorf("expected only plain-identifier callee, got %v", deps)
	}
}

func TestConstructorAttributes(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"p.py": "class Point:\n    def __init__(self, x: int, y: str):\n        self.x = x\n",
	})

	classes, _ := s.ClassesByRepo(repoID)
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	if classes[0].Attributes != "x: int, y: str" {
		t.Errorf("unexpected attributes: %q", classes[0].Attributes)
	}
}

func TestConstructorAttributesWithListDefault(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"c.py": "class Cart:\n    def __init__(self, items: list=[1,2,3]):\n        self.items = items\n",
	})

	classes, _ := s.ClassesByRepo(repoID)
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	if classes[0].Attributes != "items: list=[1,2,3]" {
		t.Errorf("depth-aware split failed, got %q", classes[0].Attributes)
	}
}

func TestUnannotatedAttributeDefaultsToUnknown(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"u.py": "class Box:\n    def __init__(self, content):\n        self.content = content\n",
	})

	classes, _ := s.ClassesByRepo(repoID)
	if classes[0].Attributes != "content: unknown" {
		t.Errorf("unexpected attributes: %q", classes[0].Attributes)
	}
}

func TestDocstringRestrictedToBodyPosition(t *testing.T) {
	s, _ := indexFixture(t, map[string]string{
		"d.py": `def outer():
    x = 1
    def inner():
        """Inner doc."""
        pass
    return inner
`,
	})

	doc, err := s.GetFunctionDescription("outer", nil)
	if err != nil {
		t.Fatalf("GetFunctionDescription: %v", err)
	}
	if doc != "" {
		t.Errorf("outer must not inherit inner docstring, got %q", doc)
	}

	doc, err = s.GetFunctionDescription("inner", nil)
	if err != nil {
		t.Fatalf("GetFunctionDescription(inner): %v", err)
	}
	if doc != "Inner doc." {
		t.Errorf("unexpected inner docstring: %q", doc)
	}
}

func TestClosureRecordedAsTopLevel(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"cl.py": "def outer():\n    def inner():\n        pass\n    inner()\n",
	})

	funcs, _ := s.FunctionsByRepo(repoID)
	if len(funcs) != 2 {
		t.Fatalf("expected outer and inner, got %d rows", len(funcs))
	}
	for _, f := range funcs {
		if f.ClassID != nil {
			t.Errorf("%s should not be owned by a class", f.Name)
		}
	}
}

func TestDecoratedMethodAttributedToClass(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"dec.py": "class Api:\n    @property\n    def status(self) -> str:\n        return self._status\n",
	})

	funcs, _ := s.FunctionsByRepo(repoID)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 method, got %d", len(funcs))
	}
	if funcs[0].ClassID == nil {
		t.Error("decorated method must carry the class id")
	}
	if funcs[0].ReturnType != "str" {
		t.Errorf("unexpected return type: %q", funcs[0].ReturnType)
	}
}

func TestReturnTypeAndParametersRecorded(t *testing.T) {
	s, repoID := indexFixture(t, map[string]string{
		"sig.py": "def add(a: int, b: int) -> int:\n    return a + b\n",
	})

	funcs, _ := s.FunctionsByRepo(repoID)
	if funcs[0].Parameters != "(a: int, b: int)" {
		t.Errorf("unexpected parameters: %q", funcs[0].Parameters)
	}
	if funcs[0].ReturnType != "int" {
		t.Errorf("unexpected return type: %q", funcs[0].ReturnType)
	}
}

func TestSplitTopLevel(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"self, x: int, y: str", []string{"self", " x: int", " y: str"}},
		{"self, items: list=[1,2,3]", []string{"self", " items: list=[1,2,3]"}},
		{"a, pair=(1, 2), b", []string{"a", " pair=(1, 2)", " b"}},
		{"self", []string{"self"}},
		{"", []string{""}},
	}
	for _, c := range cases {
		got := splitTopLevel(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitTopLevel(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestCleanDocstring(t *testing.T) {
	in := "\"\"\"First line.\n\n    Indented detail.\n    \"\"\""
	want := "First line.\n\nIndented detail."
	if got := cleanDocstring(in); got != want {
		t.Errorf("cleanDocstring = %q, want %q", got, want)
	}
	if got := cleanDocstring("'single'"); got != "single" {
		t.Errorf("single-quoted docstring: %q", got)
	}
}
