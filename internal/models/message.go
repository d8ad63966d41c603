package models

import "encoding/json"

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// InboundMessage defers payload decoding until the type is known.
type InboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client → Server message types
const (
	MsgTypeJoin          = "join"
	MsgTypeMove          = "move"
	MsgTypeCameraTrigger = "camera-trigger"
	MsgTypeNextPhase     = "next-phase"
	MsgTypeResetGame     = "reset-game"
)

// Server → Client message types
const (
	MsgTypeStateUpdate   = "state-update"
	MsgTypePlayersUpdate = "players-update"
	MsgTypeCaptureEvent  = "capture-event"
	MsgTypeError         = "error"
)

type JoinPayload struct {
	Name string `json:"name"`
}

type MovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CameraTriggerPayload struct {
	DetectorID int `json:"detectorId"`
}

// StatePayload is the full snapshot every connection renders from.
// Clients must not derive phase or estimate locally.
type StatePayload struct {
	Phase           Phase                      `json:"phase"`
	Participants    []Participant              `json:"participants"`
	DetectionLedger map[string]DetectionRecord `json:"detectionLedger"`
	Detectors       []Detector                 `json:"detectors"`
	EstimatorResult Estimate                   `json:"estimatorResult"`
}

// PlayersPayload is the lighter-weight positions-only update sent after
// move events, skipping the ledger and estimator recomputation.
type PlayersPayload struct {
	Participants []Participant `json:"participants"`
}

type CapturePayload struct {
	ParticipantName string `json:"participantName"`
	DetectorID      int    `json:"detectorId"`
	Phase           Phase  `json:"phase"`
}
