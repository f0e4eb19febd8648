package lang

func init() {
	Register(&Spec{
		Language:       Python,
		FileExtensions: []string{".py"},

		ModuleNodeType:   "module",
		ClassNodeType:    "class_definition",
		FunctionNodeType: "function_definition",
		CallNodeType:     "call",
		IdentifierKind:   "identifier",
		ParametersKind:   "parameters",
		StringKind:       "string",

		NameField:       "name",
		BodyField:       "body",
		ReturnTypeField: "return_type",
		CallTargetField: "function",

		ConstructorName: "__init__",
	})
}
