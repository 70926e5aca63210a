package bridgeclient_test

import (
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/bridgeclient"
)

// startTestServer accepts one connection, records the request up to the NUL
// terminator, and answers with response.
func startTestServer(t *testing.T, response string) (addr string, gotReqLine *string, closeFn func()) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	got := new(string)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf []byte
		var tmp [1]byte
		for {
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, rerr := conn.Read(tmp[:])
			if rerr != nil {
				break
			}
			buf = append(buf, tmp[0])
			if tmp[0] == '\x00' {
				break
			}
		}
		*got = string(buf)
		if response != "" {
			_, _ = conn.Write([]byte(response))
		}
	}()
	return ln.Addr().String(), got, func() { _ = ln.Close() }
}

func TestTransportPayloadEncoding(t *testing.T) {
	type S struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	cases := []struct {
		name         string
		payload      any
		expectedLine string
		validateJSON bool
	}{
		{name: "nil payload", payload: nil, expectedLine: "echo\x00"},
		{name: "empty string payload", payload: "", expectedLine: "echo\x00"},
		{name: "bytes payload", payload: []byte("rawbytes"), expectedLine: "echo rawbytes\x00"},
		{name: "string payload", payload: "hello world", expectedLine: "echo hello world\x00"},
		{name: "string payload with newline", payload: "multi\nline", expectedLine: "echo multi\nline\x00"},
		{name: "struct payload json marshaled", payload: S{A: 7, B: "zzz"}, validateJSON: true},
	}

	for _, tc := range cases {
		addr, got, closeFn := startTestServer(t, "ok\n")
		tr := bridgeclient.NewTransport(addr)
		out, err := tr.Do("echo", tc.payload, nil)
		closeFn()
		require.NoError(t, err, tc.name)
		assert.Equal(t, "ok", out, "the trailing newline is trimmed")

		if tc.validateJSON {
			b, merr := json.Marshal(tc.payload)
			require.NoError(t, merr, tc.name)
			assert.Equal(t, "echo "+string(b)+"\x00", *got, tc.name)
			line := strings.TrimSuffix(strings.TrimPrefix(*got, "echo "), "\x00")
			var s S
			require.NoError(t, json.Unmarshal([]byte(line), &s), tc.name)
			assert.Equal(t, tc.payload, s, tc.name)
			continue
		}
		assert.Equal(t, tc.expectedLine, *got, tc.name)
	}
}

func TestTransportPathParams(t *testing.T) {
	addr, got, closeFn := startTestServer(t, "{}\n")
	defer closeFn()

	tr := bridgeclient.NewTransport(addr)
	_, err := tr.Do("handle/{id}/property", nil, map[string]string{"id": "doc 7"})
	require.NoError(t, err)
	assert.Equal(t, "handle/doc%207/property\x00", *got, "path params are escaped into the pattern")
}

func TestTransportDialFailure(t *testing.T) {
	// A listener that is immediately closed yields a refused connection.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr := bridgeclient.NewTransport(addr)
	_, err = tr.Do("ping", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}

func TestMockTransportShortCircuits(t *testing.T) {
	var gotPath string
	var gotParams map[string]string
	tr := bridgeclient.NewMockTransport(func(path string, _ any, params map[string]string) (string, error) {
		gotPath = path
		gotParams = params
		return `{"value":1}`, nil
	})

	out, err := tr.Do("handle/{id}/invoke", nil, map[string]string{"id": "x"})
	require.NoError(t, err)
	assert.Equal(t, `{"value":1}`, out)
	assert.Equal(t, "handle/{id}/invoke", gotPath, "the responder sees the unfilled path")
	assert.Equal(t, map[string]string{"id": "x"}, gotParams)
}
