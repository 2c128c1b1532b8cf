package gateway

import (
	"encoding/json"
)

// Inbound event names
const (
	MsgJoinGame     = "joinGame"
	MsgSubmitAnswer = "submitAnswer"
	MsgLeaveGame    = "leaveGame"
)

// Envelope is the wire frame for every message in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ValidationError reports a malformed inbound payload. Per the error
// policy it is logged and the event dropped; it never terminates the
// connection.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// JoinGamePayload is the body of a joinGame event
type JoinGamePayload struct {
	Player struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"player"`
}

// Validate checks required fields
func (p *JoinGamePayload) Validate() error {
	if p.Player.ID == "" {
		return &ValidationError{Field: "player.id"}
	}
	if p.Player.Name == "" {
		return &ValidationError{Field: "player.name"}
	}
	return nil
}

// SubmitAnswerPayload is the body of a submitAnswer event
type SubmitAnswerPayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Answer   string `json:"answer"`
}

// Validate checks required fields
func (p *SubmitAnswerPayload) Validate() error {
	if p.GameID == "" {
		return &ValidationError{Field: "gameId"}
	}
	if p.PlayerID == "" {
		return &ValidationError{Field: "playerId"}
	}
	if p.Answer == "" {
		return &ValidationError{Field: "answer"}
	}
	return nil
}

// LeaveGamePayload is the body of a leaveGame event
type LeaveGamePayload struct {
	PlayerID string `json:"playerId"`
}

// Validate checks required fields
func (p *LeaveGamePayload) Validate() error {
	if p.PlayerID == "" {
		return &ValidationError{Field: "playerId"}
	}
	return nil
}

// encodeFrame builds the outbound wire frame for an event
func encodeFrame(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
