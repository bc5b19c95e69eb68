package template

// Bindings maps placeholder names to their substitutions.
type Bindings map[string]string

// EnvironmentKey is the placeholder bound to the active environment name.
const EnvironmentKey = "environment"

type position struct {
	line   int
	column int
}

type nodeText struct {
	content string
}

type nodePlaceholder struct {
	position
	content string
}
