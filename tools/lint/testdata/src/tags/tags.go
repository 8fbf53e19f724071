package tags

type ToolConfig struct {
	Path     []string `toml:"path"`
	Fallback []string `json:"fallback" toml` // want `struct field tag .* not compatible with reflect.StructTag.Get`
}

type Good struct {
	Path []string `toml:"path"`
}
