package messages

import "gridrealm/models"

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeHello       MessageType = "hello"
	MessageTypeWelcome     MessageType = "welcome"
	MessageTypeReset       MessageType = "reset"
	MessageTypeStep        MessageType = "step"
	MessageTypeObservation MessageType = "observation"
	MessageTypeError       MessageType = "error"
)

// BaseMessage is the base structure for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// HelloMessage opens a session: it names the environment to run and the
// seed that fixes the episode stream
type HelloMessage struct {
	EnvName string `json:"env_name"`
	Seed    int64  `json:"seed"`
}

// WelcomeMessage confirms a session and reports its identifier
type WelcomeMessage struct {
	SessionID string `json:"session_id"`
	EnvName   string `json:"env_name"`
	Message   string `json:"message"`
}

// StepMessage requests one environment step
type StepMessage struct {
	Action string `json:"action"`
}

// ObservationMessage is the step/reset result: the observation plus the
// scalar reward and the termination signal
type ObservationMessage struct {
	EpisodeID   string              `json:"episode_id"`
	Step        int                 `json:"step"`
	Observation *models.Observation `json:"observation"`
	Reward      float64             `json:"reward"`
	Done        bool                `json:"done"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
