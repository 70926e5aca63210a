package bridgeclient

import (
	"bytes"
	"crypto/cipher"
	"encoding/binary"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// 2 MB is far beyond any sdef-driven payload; anything larger is a framing error.
const maxPacketSize = 2 * 1024 * 1024

// encryptedConn wraps a net.Conn with chacha20poly1305 framing: a 4-byte
// big-endian length, a 12-byte counter nonce, then the sealed payload.
type encryptedConn struct {
	net.Conn
	aead    cipher.AEAD
	sendCtr uint64
	recvBuf bytes.Buffer
	mu      sync.Mutex
}

func wrapConn(conn net.Conn, sessionKey []byte) (net.Conn, error) {
	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return nil, err
	}
	return &encryptedConn{Conn: conn, aead: aead}, nil
}

func (c *encryptedConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nonce := make([]byte, chacha20poly1305.NonceSize)
	binary.BigEndian.PutUint64(nonce[4:], c.sendCtr)
	c.sendCtr++

	ct := c.aead.Seal(nil, nonce, p, nil)

	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(nonce)+len(ct)))

	if n, err := c.Conn.Write(hdr[:]); err != nil {
		return n, err
	}
	if n, err := c.Conn.Write(nonce); err != nil {
		return n, err
	}
	if n, err := c.Conn.Write(ct); err != nil {
		return n, err
	}
	return len(p), nil
}

func (c *encryptedConn) Read(p []byte) (int, error) {
	if c.recvBuf.Len() == 0 {
		var hdr [4]byte
		if n, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
			return n, err
		}
		length := binary.BigEndian.Uint32(hdr[:])
		if length > maxPacketSize {
			return 0, io.ErrUnexpectedEOF
		}

		pkt := make([]byte, length)
		if n, err := io.ReadFull(c.Conn, pkt); err != nil {
			return n, err
		}

		nonce := pkt[:chacha20poly1305.NonceSize]
		ct := pkt[chacha20poly1305.NonceSize:]

		pt, err := c.aead.Open(nil, nonce, ct, nil)
		if err != nil {
			return 0, err
		}
		c.recvBuf.Write(pt)
	}
	return c.recvBuf.Read(p)
}
