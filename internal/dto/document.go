package dto

// ContainerDoc is the document form of a container.
// It uses "mapstructure" tags to match the YAML/JSON keys of story documents.
type ContainerDoc struct {
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Count flags, either as booleans or packed into Flags.
	Visits    bool `json:"visits,omitempty" mapstructure:"visits"`
	Turns     bool `json:"turns,omitempty" mapstructure:"turns"`
	StartOnly bool `json:"start_only,omitempty" mapstructure:"start_only"`
	Flags     *int `json:"flags,omitempty" mapstructure:"flags"`

	// Content holds positional children: scalars, value maps or containers.
	Content []any `json:"content,omitempty" mapstructure:"content"`
	// Named holds named-only child containers.
	Named []any `json:"named,omitempty" mapstructure:"named"`
}

// DivertDoc is a divert target value: {divert: knot.stitch}.
type DivertDoc struct {
	Divert string `json:"divert" mapstructure:"divert"`
}

// PointerDoc is a variable pointer value: {var: score, ci: 1}.
// A missing context index means "unknown" (-1).
type PointerDoc struct {
	Var          string `json:"var" mapstructure:"var"`
	ContextIndex *int   `json:"ci,omitempty" mapstructure:"ci"`
}

// ListDoc is a list value keyed by "origin.item": {list: {colours.red: 1}}.
type ListDoc struct {
	List map[string]int `json:"list" mapstructure:"list"`
}

// Value map discriminators.
const (
	KeyDivert = "divert"
	KeyVar    = "var"
	KeyList   = "list"
)
