package dto

type RouteRequest struct {
	Question string `json:"question" validate:"required"`
}

type ToolCallDTO struct {
	Tool   string                 `json:"tool"`
	Args   map[string]interface{} `json:"args"`
	Result interface{}            `json:"result"`
}

type RouteResponse struct {
	FinalAnswer string        `json:"final_answer"`
	ToolCalls   []ToolCallDTO `json:"tool_calls"`
	Refused     bool          `json:"refused,omitempty"`
}
