package calls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"collections-center/internal/journal"
	"collections-center/internal/media"

	"github.com/google/uuid"
)

var (
	ErrInvalidArgument = errors.New("calls: invalid argument")
	ErrCapReached      = errors.New("calls: concurrent call cap reached")
)

// RoomAPI is the slice of the vendor room service the session lifecycle needs.
type RoomAPI interface {
	CreateRoom(ctx context.Context, name, metadata string) (media.Room, error)
	ListRooms(ctx context.Context, names []string) ([]media.Room, error)
	ListParticipants(ctx context.Context, room string) ([]media.Participant, error)
	DeleteRoom(ctx context.Context, room string) error
}

// CapLimiter bounds concurrent call sessions per dialed number. Optional;
// a nil limiter disables the cap.
type CapLimiter interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Service orchestrates the call-session lifecycle: create room, issue status,
// tear down. It performs no telephony bridging; in production the room
// creation would be followed by a SIP dial-out to PhoneNumber.
type Service struct {
	rooms   RoomAPI
	limiter CapLimiter
	journal *journal.Service

	newID func() string
	clock func() time.Time
}

func NewService(rooms RoomAPI, limiter CapLimiter, jrnl *journal.Service) *Service {
	return &Service{
		rooms:   rooms,
		limiter: limiter,
		journal: jrnl,
		newID:   uuid.NewString,
		clock:   time.Now,
	}
}

type InitiateRequest struct {
	PhoneNumber   string  `json:"phoneNumber"`
	CustomerName  string  `json:"customerName"`
	AmountOwed    float64 `json:"amountOwed"`
	AccountNumber string  `json:"accountNumber"`
	DaysOverdue   int     `json:"daysOverdue"`
}

// Initiate validates the request, creates a uniquely named room carrying the
// call metadata, and returns the session in "initiating" state.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (Session, error) {
	if req.PhoneNumber == "" || req.CustomerName == "" || req.AmountOwed <= 0 {
		return Session{}, ErrInvalidArgument
	}
	if s.rooms == nil {
		return Session{}, media.ErrNotConfigured
	}

	acquired := false
	if s.limiter != nil {
		ok, err := s.limiter.Acquire(ctx, req.PhoneNumber)
		switch {
		case err != nil:
			// The cap is best-effort; a broken limiter must not block calls.
			slog.Warn("call cap acquire failed", "err", err)
		case !ok:
			return Session{}, ErrCapReached
		default:
			acquired = true
		}
	}

	id := s.newID()
	callID := "CALL-" + id
	roomName := fmt.Sprintf("call-%s-%s", id, req.PhoneNumber)

	accountNumber := req.AccountNumber
	if accountNumber == "" {
		accountNumber = "ACC-" + id
	}
	daysOverdue := req.DaysOverdue
	if daysOverdue <= 0 {
		daysOverdue = 30
	}

	meta, err := json.Marshal(RoomMetadata{
		CallID:        callID,
		PhoneNumber:   req.PhoneNumber,
		CustomerName:  req.CustomerName,
		AmountOwed:    req.AmountOwed,
		AccountNumber: accountNumber,
		DaysOverdue:   daysOverdue,
		CallType:      CallTypeOutboundCollection,
		InitiatedAt:   s.clock().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Session{}, err
	}

	if _, err := s.rooms.CreateRoom(ctx, roomName, string(meta)); err != nil {
		// Give the slot back only if this request took it; releasing a slot
		// some other caller holds would let their number be dialed twice.
		if acquired {
			s.releaseCap(ctx, req.PhoneNumber)
		}
		return Session{}, err
	}

	if s.journal != nil {
		if err := s.journal.CallInitiated(ctx, callID, req.AmountOwed, string(meta)); err != nil {
			slog.Warn("journal write failed", "call_id", callID, "err", err)
		}
	}

	return Session{
		CallID:        callID,
		RoomName:      roomName,
		PhoneNumber:   req.PhoneNumber,
		CustomerName:  req.CustomerName,
		AmountOwed:    req.AmountOwed,
		AccountNumber: accountNumber,
		Status:        SessionStatusInitiating,
		Message:       "Call is being connected. Agent will join automatically.",
	}, nil
}

// Status infers the session state from the current participant count:
// more than one participant means connected, exactly one means the agent or
// customer is still waiting for the other side, zero with an existing room
// means the call is initiating, and a missing room reports not_found rather
// than an error. Fetch failures also report not_found; the next poll retries.
func (s *Service) Status(ctx context.Context, roomName string) (StatusResult, error) {
	if roomName == "" {
		return StatusResult{}, ErrInvalidArgument
	}
	if s.rooms == nil {
		return StatusResult{}, media.ErrNotConfigured
	}

	notFound := StatusResult{Status: SessionStatusNotFound, Message: "Call not found or has ended"}

	rooms, err := s.rooms.ListRooms(ctx, []string{roomName})
	if err != nil {
		if !errors.Is(err, media.ErrRoomNotFound) {
			slog.Warn("room fetch failed", "room", roomName, "err", err)
		}
		return notFound, nil
	}
	var room *media.Room
	for i := range rooms {
		if rooms[i].Name == roomName {
			room = &rooms[i]
			break
		}
	}
	if room == nil {
		return notFound, nil
	}

	participants, err := s.rooms.ListParticipants(ctx, roomName)
	if err != nil {
		if !errors.Is(err, media.ErrRoomNotFound) {
			slog.Warn("participant fetch failed", "room", roomName, "err", err)
		}
		return notFound, nil
	}

	var status SessionStatus
	switch {
	case len(participants) > 1:
		status = SessionStatusConnected
	case len(participants) == 1:
		status = SessionStatusWaiting
	default:
		status = SessionStatusInitiating
	}

	metadata := map[string]any{}
	if room.Metadata != "" {
		// Unparseable metadata degrades to an empty blob rather than failing
		// the whole status query.
		_ = json.Unmarshal([]byte(room.Metadata), &metadata)
	}

	out := StatusResult{
		Status: status,
		Room: &RoomInfo{
			Name:             room.Name,
			Sid:              room.Sid,
			CreatedAt:        int64(room.CreationTime),
			ParticipantCount: len(participants),
		},
		Metadata:     metadata,
		Participants: make([]ParticipantInfo, 0, len(participants)),
	}
	for _, p := range participants {
		out.Participants = append(out.Participants, ParticipantInfo{
			Identity: p.Identity,
			Name:     p.Name,
			JoinedAt: int64(p.JoinedAt),
		})
	}
	return out, nil
}

// End tears down the vendor room for a finished call and releases the
// concurrent-call slot for the dialed number.
func (s *Service) End(ctx context.Context, roomName string) error {
	if roomName == "" {
		return ErrInvalidArgument
	}
	if s.rooms == nil {
		return media.ErrNotConfigured
	}

	if err := s.rooms.DeleteRoom(ctx, roomName); err != nil {
		return err
	}

	if phone := phoneFromRoomName(roomName); phone != "" {
		s.releaseCap(ctx, phone)
	}
	if s.journal != nil {
		if err := s.journal.CallEnded(ctx, roomName); err != nil {
			slog.Warn("journal write failed", "room", roomName, "err", err)
		}
	}
	return nil
}

func (s *Service) releaseCap(ctx context.Context, phone string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Release(ctx, phone); err != nil {
		slog.Warn("call cap release failed", "err", err)
	}
}

// phoneFromRoomName recovers the dialed number from a "call-<id>-<phone>"
// room name. The id itself contains dashes, so take the last segment.
func phoneFromRoomName(roomName string) string {
	if !strings.HasPrefix(roomName, "call-") {
		return ""
	}
	i := strings.LastIndex(roomName, "-")
	if i < 0 || i == len(roomName)-1 {
		return ""
	}
	return roomName[i+1:]
}
