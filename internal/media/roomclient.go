package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"collections-center/internal/config"
)

// RoomClient talks to the vendor's hosted RoomService over its JSON/HTTP
// (Twirp) surface. No retry or backoff wraps these calls; a single failed
// attempt surfaces to the caller, which matches the rest of the portal.
//
// The vendor Go SDK is intentionally not used here; the portal only needs
// four calls and a hand-rolled adapter keeps the provider boundary explicit.

var (
	ErrRoomNotFound = errors.New("media: room not found")
	ErrUpstream     = errors.New("media: upstream request failed")
)

const roomServicePrefix = "/twirp/livekit.RoomService/"

type RoomClient struct {
	baseURL string
	issuer  *TokenIssuer
	http    *http.Client
	now     func() time.Time

	// Observe, when set, receives the latency of every API call.
	Observe func(method string, d time.Duration)
}

func NewRoomClient(cfg config.LiveKitConfig, issuer *TokenIssuer) (*RoomClient, error) {
	if issuer == nil {
		return nil, ErrNotConfigured
	}
	base, err := apiBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	return &RoomClient{
		baseURL: base,
		issuer:  issuer,
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}, nil
}

// Room is the subset of the vendor room object the portal consumes.
type Room struct {
	Sid             string      `json:"sid"`
	Name            string      `json:"name"`
	Metadata        string      `json:"metadata"`
	CreationTime    UnixSeconds `json:"creationTime"`
	NumParticipants int         `json:"numParticipants"`
}

// Participant is the subset of the vendor participant object the portal consumes.
type Participant struct {
	Sid      string      `json:"sid"`
	Identity string      `json:"identity"`
	Name     string      `json:"name"`
	JoinedAt UnixSeconds `json:"joinedAt"`
}

// UnixSeconds tolerates the vendor emitting int64 fields either as JSON
// numbers or as quoted strings (protojson does the latter).
type UnixSeconds int64

func (u *UnixSeconds) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*u = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("media: invalid timestamp %q", s)
	}
	*u = UnixSeconds(n)
	return nil
}

func (c *RoomClient) CreateRoom(ctx context.Context, name, metadata string) (Room, error) {
	var out Room
	req := struct {
		Name     string `json:"name"`
		Metadata string `json:"metadata,omitempty"`
	}{Name: name, Metadata: metadata}
	if err := c.call(ctx, "CreateRoom", req, &out); err != nil {
		return Room{}, err
	}
	return out, nil
}

// ListRooms returns the rooms matching names. Unknown names are simply
// absent from the result; the vendor does not error on them.
func (c *RoomClient) ListRooms(ctx context.Context, names []string) ([]Room, error) {
	var out struct {
		Rooms []Room `json:"rooms"`
	}
	req := struct {
		Names []string `json:"names,omitempty"`
	}{Names: names}
	if err := c.call(ctx, "ListRooms", req, &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

func (c *RoomClient) ListParticipants(ctx context.Context, room string) ([]Participant, error) {
	var out struct {
		Participants []Participant `json:"participants"`
	}
	req := struct {
		Room string `json:"room"`
	}{Room: room}
	if err := c.call(ctx, "ListParticipants", req, &out); err != nil {
		return nil, err
	}
	return out.Participants, nil
}

func (c *RoomClient) DeleteRoom(ctx context.Context, room string) error {
	req := struct {
		Room string `json:"room"`
	}{Room: room}
	var out struct{}
	return c.call(ctx, "DeleteRoom", req, &out)
}

func (c *RoomClient) call(ctx context.Context, method string, in, out any) error {
	if c.Observe != nil {
		start := c.now()
		defer func() { c.Observe(method, time.Since(start)) }()
	}

	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+roomServicePrefix+method, bytes.NewReader(body))
	if err != nil {
		return err
	}

	token, err := c.issuer.MintAdmin(c.now())
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var twerr struct {
			Code string `json:"code"`
			Msg  string `json:"msg"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &twerr)
		if resp.StatusCode == http.StatusNotFound || twerr.Code == "not_found" {
			return ErrRoomNotFound
		}
		return fmt.Errorf("%w: %s: status %d code %q", ErrUpstream, method, resp.StatusCode, twerr.Code)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrUpstream, method, err)
	}
	return nil
}

// apiBaseURL rewrites the signalling URL (ws/wss) to its HTTP counterpart.
func apiBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	switch {
	case raw == "":
		return "", errors.New("media: url is required")
	case strings.HasPrefix(raw, "wss://"):
		return "https://" + strings.TrimPrefix(raw, "wss://"), nil
	case strings.HasPrefix(raw, "ws://"):
		return "http://" + strings.TrimPrefix(raw, "ws://"), nil
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "http://"):
		return raw, nil
	default:
		return "", fmt.Errorf("media: unsupported url scheme in %q", raw)
	}
}
