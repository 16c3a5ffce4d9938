package entity

// ToolCall is the structured invocation parsed from the routing model's
// output. Consumed immediately, never persisted.
type ToolCall struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

// ToolRefuse is the synthetic tool name used when the request is unsafe,
// malformed, ambiguous, or the model named a tool outside the registry.
const ToolRefuse = "refuse"
