package bridgeclient

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	key, err := DeriveKey("secret")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	again, err := DeriveKey("secret")
	require.NoError(t, err)
	assert.Equal(t, key, again, "key derivation is deterministic")

	other, err := DeriveKey("different")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = DeriveKey("")
	require.Error(t, err)
}

// serveHandshake runs the agent side of the handshake on conn: verify the
// client's MAC, answer OK plus a server nonce, and return the session key.
func serveHandshake(t *testing.T, conn net.Conn, key []byte) []byte {
	t.Helper()

	prefix := make([]byte, len(handshakeMagic))
	_, err := io.ReadFull(conn, prefix)
	require.NoError(t, err)
	require.Equal(t, handshakeMagic, string(prefix))

	clientNonce := make([]byte, nonceSize)
	_, err = io.ReadFull(conn, clientNonce)
	require.NoError(t, err)

	gotMAC := make([]byte, sha256.Size)
	_, err = io.ReadFull(conn, gotMAC)
	require.NoError(t, err)

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(authContext))
	mac.Write(clientNonce)
	require.True(t, hmac.Equal(gotMAC, mac.Sum(nil)), "client MAC verifies")

	serverNonce := make([]byte, nonceSize)
	_, err = rand.Read(serverNonce)
	require.NoError(t, err)

	_, err = conn.Write(append([]byte("OK\x00"), serverNonce...))
	require.NoError(t, err)

	return deriveSessionKey(key, serverNonce, clientNonce)
}

func TestClientHandshakeAndEncryptedConn(t *testing.T) {
	key, err := DeriveKey("shared secret")
	require.NoError(t, err)

	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	serverKey := make(chan []byte, 1)
	go func() {
		serverKey <- serveHandshake(t, serverSide, key)
	}()

	sessionKey, err := clientHandshake(clientSide, key)
	require.NoError(t, err)
	assert.Equal(t, <-serverKey, sessionKey, "both sides derive the same session key")

	// Round-trip one message through the encrypted framing.
	clientConn, err := wrapConn(clientSide, sessionKey)
	require.NoError(t, err)
	serverConn, err := wrapConn(serverSide, sessionKey)
	require.NoError(t, err)

	msg := []byte("ping {\"x\":1}\x00")
	done := make(chan error, 1)
	go func() {
		_, werr := clientConn.Write(msg)
		done <- werr
	}()

	got := make([]byte, len(msg))
	_, err = io.ReadFull(serverConn, got)
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, msg, got)
}

func TestClientHandshakeRejected(t *testing.T) {
	key, err := DeriveKey("shared secret")
	require.NoError(t, err)

	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	go func() {
		// Drain the client's handshake, then refuse it.
		buf := make([]byte, len(handshakeMagic)+nonceSize+sha256.Size)
		if _, err := io.ReadFull(serverSide, buf); err != nil {
			return
		}
		_, _ = serverSide.Write([]byte("NO\x00"))
	}()

	_, err = clientHandshake(clientSide, key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}
