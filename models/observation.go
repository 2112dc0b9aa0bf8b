package models

// ObsCell is one cell of an observation. Unknown marks cells outside the
// visible set; they are always reported, never omitted.
type ObsCell struct {
	Kind    ObjectKind `json:"kind"`
	Color   Color      `json:"color"`
	IsOpen  bool       `json:"is_open,omitempty"`
	Unknown bool       `json:"unknown,omitempty"`
}

// Observation is the agent's view of the grid for one step. It is derived
// from the state and recomputed every step, never persisted. For partial
// policies the view is agent-centered with the agent facing the top of the
// window; full visibility keeps the world frame.
type Observation struct {
	Height      int         `json:"height"`
	Width       int         `json:"width"`
	Cells       [][]ObsCell `json:"cells"`
	AgentPos    Position    `json:"agent_pos"`
	Orientation Orientation `json:"orientation"`
	Carrying    *GridObject `json:"carrying,omitempty"`
}
