package media

import (
	"testing"
	"time"

	"collections-center/internal/config"
)

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	iss, err := NewTokenIssuer(config.LiveKitConfig{URL: "wss://media.example.com", APIKey: "apikey", APISecret: "apisecret"})
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return iss
}

func TestNewTokenIssuer_RequiresCredentials(t *testing.T) {
	if _, err := NewTokenIssuer(config.LiveKitConfig{}); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestMintParticipant_GrantsAndTTL(t *testing.T) {
	iss := testIssuer(t)
	now := time.Unix(1700000000, 0).UTC()

	tok, err := iss.MintParticipant(now, "call-room", "John Doe", `{"accountNumber":"ACC-001234"}`)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := iss.Verify(tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "John Doe" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	g := claims.Video
	if !g.RoomJoin || g.Room != "call-room" || !g.CanPublish || !g.CanSubscribe || !g.CanPublishData {
		t.Fatalf("unexpected grant: %+v", g)
	}
	if got := claims.ExpiresAt.Time.Sub(now); got != ParticipantTokenTTL {
		t.Fatalf("expected 4h ttl, got %v", got)
	}
}

func TestMintParticipant_RejectsExpired(t *testing.T) {
	iss := testIssuer(t)
	now := time.Unix(1700000000, 0).UTC()

	tok, err := iss.MintParticipant(now, "call-room", "id", "")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := iss.Verify(tok, now.Add(ParticipantTokenTTL+time.Minute)); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestMintParticipant_RequiresRoomAndIdentity(t *testing.T) {
	iss := testIssuer(t)
	if _, err := iss.MintParticipant(time.Now(), "", "id", ""); err == nil {
		t.Fatalf("expected error for missing room")
	}
	if _, err := iss.MintParticipant(time.Now(), "room", "", ""); err == nil {
		t.Fatalf("expected error for missing identity")
	}
}

func TestMintAdmin_RoomManagementGrant(t *testing.T) {
	iss := testIssuer(t)
	now := time.Unix(1700000000, 0).UTC()

	tok, err := iss.MintAdmin(now)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := iss.Verify(tok, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	g := claims.Video
	if !g.RoomCreate || !g.RoomList || !g.RoomAdmin {
		t.Fatalf("unexpected grant: %+v", g)
	}
	if g.RoomJoin {
		t.Fatalf("admin token must not carry a join grant")
	}
}
