package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"collections-center/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *RoomClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LiveKitConfig{URL: srv.URL, APIKey: "apikey", APISecret: "apisecret"}
	iss, err := NewTokenIssuer(cfg)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	c, err := NewRoomClient(cfg, iss)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestCreateRoom_SendsAuthAndMetadata(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(Room{Sid: "RM_1", Name: gotBody["name"], Metadata: gotBody["metadata"]})
	})

	room, err := c.CreateRoom(context.Background(), "call-abc", `{"callId":"CALL-1"}`)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotPath != "/twirp/livekit.RoomService/CreateRoom" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if !strings.HasPrefix(gotAuth, "Bearer ") {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if room.Sid != "RM_1" || room.Name != "call-abc" {
		t.Fatalf("unexpected room: %+v", room)
	}
}

func TestListRooms_UnknownNameIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rooms":[]}`))
	})

	rooms, err := c.ListRooms(context.Background(), []string{"nope"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %d", len(rooms))
	}
}

func TestListParticipants_StringTimestamps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// protojson renders int64 as a quoted string.
		_, _ = w.Write([]byte(`{"participants":[{"sid":"PA_1","identity":"agent","name":"Sarah","joinedAt":"1700000000"}]}`))
	})

	ps, err := c.ListParticipants(context.Background(), "call-abc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ps) != 1 || ps[0].JoinedAt != 1700000000 {
		t.Fatalf("unexpected participants: %+v", ps)
	}
}

func TestListParticipants_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","msg":"requested room does not exist"}`))
	})

	_, err := c.ListParticipants(context.Background(), "gone")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestCall_UpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"internal","msg":"boom"}`))
	})

	_, err := c.CreateRoom(context.Background(), "call-abc", "")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestAPIBaseURL_SchemeRewrite(t *testing.T) {
	cases := map[string]string{
		"wss://media.example.com":    "https://media.example.com",
		"ws://localhost:7880":        "http://localhost:7880",
		"https://media.example.com/": "https://media.example.com",
	}
	for in, want := range cases {
		got, err := apiBaseURL(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := apiBaseURL("ftp://nope"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}
