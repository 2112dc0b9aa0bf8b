package handlers

import (
	"encoding/json"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gridrealm/config"
	"gridrealm/messages"
	"gridrealm/models"
	"gridrealm/network"
	"gridrealm/persistence"
	"gridrealm/services"
)

// SessionHandler manages a single client connection and the environment
// instance it drives. Every session runs its own environment, so sessions
// never contend on simulation state.
type SessionHandler struct {
	conn           *network.Connection
	episodeService *services.EpisodeService
	sessionManager *SessionManager
	replayDir      string

	sessionID string
	envName   string
	env       *services.Environment
	replay    *persistence.ReplayWriter
}

// HandleSessionConnection handles a new client connection
func HandleSessionConnection(wsConn *websocket.Conn, episodeService *services.EpisodeService, sessionManager *SessionManager, replayDir string) {
	conn := network.NewConnection(wsConn)
	handler := &SessionHandler{
		conn:           conn,
		episodeService: episodeService,
		sessionManager: sessionManager,
		replayDir:      replayDir,
	}

	// Start the write pump in a goroutine
	go conn.WritePump()

	// Handle the read pump in the current goroutine
	conn.ReadPump(handler)

	// Clean up when the connection is closed
	handler.closeReplay()
	handler.recordEpisode()
	if handler.sessionID != "" {
		sessionManager.RemoveSession(handler.sessionID)
		log.Printf("Session %s disconnected", handler.sessionID)
	}
}

// HandleMessage handles incoming messages from the client
func (h *SessionHandler) HandleMessage(conn *network.Connection, message []byte) {
	var baseMsg messages.BaseMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeHello:
		h.handleHello(baseMsg.Payload)
	case messages.MessageTypeReset:
		h.handleReset()
	case messages.MessageTypeStep:
		h.handleStep(baseMsg.Payload)
	default:
		log.Printf("Unknown message type: %s", baseMsg.Type)
		h.sendError("UNKNOWN_MESSAGE_TYPE", "Unknown message type received")
	}
}

// handleHello builds the session's environment from the requested preset
func (h *SessionHandler) handleHello(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling hello payload: %v", err)
		return
	}

	var helloMsg messages.HelloMessage
	if err := json.Unmarshal(data, &helloMsg); err != nil {
		log.Printf("Error unmarshaling hello message: %v", err)
		return
	}

	cfg, err := config.LoadPreset(helloMsg.EnvName)
	if err != nil {
		log.Printf("Error loading environment config: %v", err)
		h.sendError("HELLO_FAILED", err.Error())
		return
	}

	seed := helloMsg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	env, err := services.NewEnvironment(cfg, seed)
	if err != nil {
		log.Printf("Error building environment: %v", err)
		h.sendError("HELLO_FAILED", err.Error())
		return
	}

	h.env = env
	h.envName = helloMsg.EnvName
	h.sessionID = uuid.New().String()
	h.sessionManager.AddSession(h.sessionID, h)

	h.conn.SendMessage(messages.BaseMessage{
		Type: messages.MessageTypeWelcome,
		Payload: messages.WelcomeMessage{
			SessionID: h.sessionID,
			EnvName:   h.envName,
			Message:   "Session established",
		},
	})
}

// handleReset starts a new episode
func (h *SessionHandler) handleReset() {
	if h.env == nil {
		h.sendError("NOT_INITIALIZED", "Send hello before reset")
		return
	}

	// A reset mid-episode finalizes the previous one first.
	h.closeReplay()
	h.recordEpisode()

	obs, err := h.env.Reset()
	if err != nil {
		log.Printf("Error resetting environment: %v", err)
		h.sendError("RESET_FAILED", err.Error())
		return
	}
	h.openReplay()

	h.sendObservation(obs, 0, false)
}

// handleStep applies one action to the session's environment
func (h *SessionHandler) handleStep(payload interface{}) {
	if h.env == nil {
		h.sendError("NOT_INITIALIZED", "Send hello before stepping")
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling step payload: %v", err)
		return
	}

	var stepMsg messages.StepMessage
	if err := json.Unmarshal(data, &stepMsg); err != nil {
		log.Printf("Error unmarshaling step message: %v", err)
		return
	}

	action, err := models.ParseAction(stepMsg.Action)
	if err != nil {
		h.sendError("STEP_FAILED", err.Error())
		return
	}

	obs, reward, done, err := h.env.Step(action)
	if err != nil {
		log.Printf("Error stepping environment: %v", err)
		h.sendError("STEP_FAILED", err.Error())
		return
	}

	if h.replay != nil {
		state := h.env.State()
		record := models.StepRecord{
			Step:        h.env.StepCount(),
			Action:      action.String(),
			Reward:      reward,
			Done:        done,
			AgentPos:    state.Agent.Pos,
			Orientation: state.Agent.Orientation.String(),
		}
		if err := h.replay.Append(record); err != nil {
			log.Printf("Error appending replay record: %v", err)
		}
	}

	if done {
		h.closeReplay()
		h.recordEpisode()
	}

	h.sendObservation(obs, reward, done)
}

// sendObservation sends the step result to the client
func (h *SessionHandler) sendObservation(obs *models.Observation, reward float64, done bool) {
	msg := messages.BaseMessage{
		Type: messages.MessageTypeObservation,
		Payload: messages.ObservationMessage{
			EpisodeID:   h.env.EpisodeID(),
			Step:        h.env.StepCount(),
			Observation: obs,
			Reward:      reward,
			Done:        done,
		},
	}
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending observation: %v", err)
	}
}

func (h *SessionHandler) sendError(code, message string) {
	h.conn.SendMessage(messages.BaseMessage{
		Type: messages.MessageTypeError,
		Payload: messages.ErrorMessage{
			Code:    code,
			Message: message,
		},
	})
}

// openReplay starts a replay file for the new episode when recording is on
func (h *SessionHandler) openReplay() {
	if h.replayDir == "" || h.env == nil {
		return
	}
	path := filepath.Join(h.replayDir, h.env.EpisodeID()+".jsonl.zst")
	replay, err := persistence.NewReplayWriter(path, persistence.ReplayHeader{
		EpisodeID: h.env.EpisodeID(),
		EnvName:   h.envName,
		Seed:      h.env.Seed(),
	})
	if err != nil {
		log.Printf("Error opening replay file: %v", err)
		return
	}
	h.replay = replay
}

func (h *SessionHandler) closeReplay() {
	if h.replay == nil {
		return
	}
	if err := h.replay.Close(); err != nil {
		log.Printf("Error closing replay file: %v", err)
	}
	h.replay = nil
}

// recordEpisode persists the current episode's summary, if any
func (h *SessionHandler) recordEpisode() {
	if h.env == nil || h.env.EpisodeID() == "" || h.episodeService == nil {
		return
	}
	if _, err := h.episodeService.RecordEpisode(h.envName, h.env); err != nil {
		log.Printf("Error recording episode: %v", err)
	}
}
