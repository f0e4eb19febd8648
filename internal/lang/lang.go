package lang

// Language identifies a supported source language.
type Language string

const (
	Python Language = "python"
)

// Spec defines the tree-sitter node kinds the indexer cares about for a
// language, plus the filename conventions used to recognize its files.
type Spec struct {
	Language       Language
	FileExtensions []string

	// Node kinds.
	ModuleNodeType   string
	ClassNodeType    string
	FunctionNodeType string
	CallNodeType     string
	IdentifierKind   string
	ParametersKind   string
	StringKind       string

	// Field names on definition/call nodes.
	NameField       string
	BodyField       string
	ReturnTypeField string
	CallTargetField string

	// ConstructorName is the method name that initializes instances.
	ConstructorName string
}

// registry maps file extensions to language specs.
var registry = map[string]*Spec{}

// Register adds a Spec to the global registry.
func Register(spec *Spec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the Spec for a file extension (e.g. ".py"),
// or nil when the extension is not a supported source language.
func ForExtension(ext string) *Spec {
	return registry[ext]
}

// ForLanguage returns the Spec for a language.
func ForLanguage(l Language) *Spec {
	for _, spec := range registry {
		if spec.Language == l {
			return spec
		}
	}
	return nil
}
