package media

import (
	"errors"
	"time"

	"collections-center/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// ParticipantTokenTTL is the fixed validity window for portal-issued room
// credentials. Expiry is the only lifecycle bound; there is no revocation.
const ParticipantTokenTTL = 4 * time.Hour

// adminTokenTTL bounds the short-lived credential the room client mints for
// its own API calls.
const adminTokenTTL = 10 * time.Minute

var ErrNotConfigured = errors.New("media: credentials not configured")

// VideoGrant mirrors the vendor's room permission claim.
type VideoGrant struct {
	RoomJoin bool   `json:"roomJoin,omitempty"`
	Room     string `json:"room,omitempty"`

	RoomCreate bool `json:"roomCreate,omitempty"`
	RoomList   bool `json:"roomList,omitempty"`
	RoomAdmin  bool `json:"roomAdmin,omitempty"`

	CanPublish     bool `json:"canPublish,omitempty"`
	CanSubscribe   bool `json:"canSubscribe,omitempty"`
	CanPublishData bool `json:"canPublishData,omitempty"`
}

// Claims is the access-credential shape the vendor service verifies:
// HS256, issuer = API key, subject = participant identity, plus a video grant.
type Claims struct {
	jwt.RegisteredClaims

	Video    VideoGrant `json:"video"`
	Metadata string     `json:"metadata,omitempty"`
}

// TokenIssuer mints signed room credentials.
type TokenIssuer struct {
	apiKey string
	secret []byte
}

func NewTokenIssuer(cfg config.LiveKitConfig) (*TokenIssuer, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrNotConfigured
	}
	return &TokenIssuer{apiKey: cfg.APIKey, secret: []byte(cfg.APISecret)}, nil
}

// MintParticipant issues a join/publish/subscribe/publish-data credential
// scoped to a single room, valid for ParticipantTokenTTL.
func (t *TokenIssuer) MintParticipant(now time.Time, room, identity, metadata string) (string, error) {
	if room == "" || identity == "" {
		return "", errors.New("media: room and identity are required")
	}
	return t.sign(Claims{
		RegisteredClaims: registered(t.apiKey, identity, now, ParticipantTokenTTL),
		Video: VideoGrant{
			RoomJoin:       true,
			Room:           room,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
		},
		Metadata: metadata,
	})
}

// MintAdmin issues the server-side credential used for room management calls.
func (t *TokenIssuer) MintAdmin(now time.Time) (string, error) {
	return t.sign(Claims{
		RegisteredClaims: registered(t.apiKey, t.apiKey, now, adminTokenTTL),
		Video: VideoGrant{
			RoomCreate: true,
			RoomList:   true,
			RoomAdmin:  true,
		},
	})
}

// Verify parses and validates a credential minted by this issuer.
// Used by tests and diagnostics; the vendor service does the real check.
func (t *TokenIssuer) Verify(tokenString string, now time.Time) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuer(t.apiKey),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, errors.New("media: subject missing")
	}
	return claims, nil
}

func (t *TokenIssuer) sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

func registered(issuer, subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
