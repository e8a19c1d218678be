package calls

// CallType is embedded into room metadata so the agent worker knows which
// script to run.
const CallTypeOutboundCollection = "outbound_collection"

// SessionStatus is derived from the vendor room state on every status query;
// it is never stored. Callers must re-poll, there are no push events.
type SessionStatus string

const (
	SessionStatusInitiating SessionStatus = "initiating"
	SessionStatusWaiting    SessionStatus = "waiting"
	SessionStatusConnected  SessionStatus = "connected"
	SessionStatusNotFound   SessionStatus = "not_found"
)

// RoomMetadata is the JSON blob attached to the vendor room at creation.
type RoomMetadata struct {
	CallID        string  `json:"callId"`
	PhoneNumber   string  `json:"phoneNumber"`
	CustomerName  string  `json:"customerName"`
	AmountOwed    float64 `json:"amountOwed"`
	AccountNumber string  `json:"accountNumber"`
	DaysOverdue   int     `json:"daysOverdue"`
	CallType      string  `json:"callType"`
	InitiatedAt   string  `json:"initiatedAt"`
}

// Session echoes the initiation result back to the client.
type Session struct {
	CallID        string  `json:"callId"`
	RoomName      string  `json:"roomName"`
	PhoneNumber   string  `json:"phoneNumber"`
	CustomerName  string  `json:"customerName"`
	AmountOwed    float64 `json:"amountOwed"`
	AccountNumber string  `json:"accountNumber"`

	Status  SessionStatus `json:"status"`
	Message string        `json:"message"`
}

// RoomInfo is the room summary returned by a status query.
type RoomInfo struct {
	Name             string `json:"name"`
	Sid              string `json:"sid"`
	CreatedAt        int64  `json:"createdAt"`
	ParticipantCount int    `json:"participantCount"`
}

// ParticipantInfo is the per-participant summary returned by a status query.
type ParticipantInfo struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt"`
}

// StatusResult is the full status payload.
type StatusResult struct {
	Status       SessionStatus     `json:"status"`
	Room         *RoomInfo         `json:"room,omitempty"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
	Participants []ParticipantInfo `json:"participants,omitempty"`
	Message      string            `json:"message,omitempty"`
}
