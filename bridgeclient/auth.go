package bridgeclient

import (
	"crypto/hmac"
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	handshakeMagic   = "gXA1\x00"
	nonceSize        = 32
	authContext      = "goxa-auth-v1"
	sessionContext   = "goxa-session-v1"
	pbkdf2Salt       = "goxa-key-v1"
	pbkdf2Iterations = 100000
)

// DeriveKey stretches a shared secret to the 32-byte key the agent protocol
// encrypts with.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("secret cannot be empty")
	}
	return pbkdf2.Key(sha256.New, secret, []byte(pbkdf2Salt), pbkdf2Iterations, 32)
}

// clientHandshake authenticates against the agent and returns the session
// key for the connection. Wire shape: magic + client nonce + HMAC, answered
// by "OK\x00" + server nonce.
func clientHandshake(conn net.Conn, key []byte) ([]byte, error) {
	clientNonce := make([]byte, nonceSize)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, fmt.Errorf("generate client nonce: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(authContext))
	mac.Write(clientNonce)

	msg := append([]byte(handshakeMagic), clientNonce...)
	msg = append(msg, mac.Sum(nil)...)
	if _, err := conn.Write(msg); err != nil {
		return nil, fmt.Errorf("write handshake: %w", err)
	}

	prefix := make([]byte, 3)
	if _, err := io.ReadFull(conn, prefix); err != nil {
		return nil, fmt.Errorf("read handshake response: %w", err)
	}
	if string(prefix) != "OK\x00" {
		return nil, errors.New("handshake rejected")
	}
	serverNonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(conn, serverNonce); err != nil {
		return nil, fmt.Errorf("read server nonce: %w", err)
	}

	return deriveSessionKey(key, serverNonce, clientNonce), nil
}

// deriveSessionKey mixes the shared key with both nonces. Plain SHA mixing
// keeps agent implementations simple.
func deriveSessionKey(key, serverNonce, clientNonce []byte) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write(serverNonce)
	h.Write(clientNonce)
	h.Write([]byte(sessionContext))
	return h.Sum(nil)
}
