package models

import "time"

// Episode is the persisted summary of one finished or running episode
type Episode struct {
	ID          string    `json:"id"`
	EnvName     string    `json:"env_name"`
	Seed        int64     `json:"seed"`
	Steps       int       `json:"steps"`
	TotalReward float64   `json:"total_reward"`
	Terminated  bool      `json:"terminated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StepRecord is one step of an episode replay
type StepRecord struct {
	Step        int      `json:"step"`
	Action      string   `json:"action"`
	Reward      float64  `json:"reward"`
	Done        bool     `json:"done"`
	AgentPos    Position `json:"agent_pos"`
	Orientation string   `json:"orientation"`
}
