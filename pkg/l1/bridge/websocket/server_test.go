package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"golang.org/x/net/websocket"

	"github.com/robotalks/armlink/pkg/l0/device"
	"github.com/robotalks/armlink/pkg/l0/frame"
	"github.com/robotalks/armlink/pkg/l1/bridge"
	"github.com/robotalks/armlink/pkg/l1/gateway"
)

type fakePort struct {
	mu   sync.Mutex
	rbuf bytes.Buffer
	wbuf bytes.Buffer
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rbuf.Len() == 0 {
		time.Sleep(time.Millisecond)
		return 0, nil
	}
	return p.rbuf.Read(b)
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wbuf.Write(b)
}

func (p *fakePort) Close() error                       { return nil }
func (p *fakePort) SetReadTimeout(time.Duration) error { return nil }

func TestServeCommands(t *testing.T) {
	port := &fakePort{}
	g := gateway.New()
	g.Conn.ScanTimeout = 50 * time.Millisecond
	g.Conn.Dial = func(path string, mode *serial.Mode) (device.Port, error) {
		return port, nil
	}

	srv := httptest.NewServer((&Server{Gateway: g}).Handler())
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()

	do := func(req bridge.Request) bridge.Reply {
		t.Helper()
		pkt, err := json.Marshal(&req)
		require.NoError(t, err)
		require.NoError(t, websocket.Message.Send(conn, pkt))
		var out []byte
		require.NoError(t, websocket.Message.Receive(conn, &out))
		var reply bridge.Reply
		require.NoError(t, json.Unmarshal(out, &reply))
		return reply
	}

	state := frame.State{Joints: [6]byte{1, 2, 3, 4, 5, 6}, Speed: 42}

	reply := do(bridge.Request{Cmd: bridge.CmdSend, State: &state})
	require.False(t, reply.OK)
	require.Contains(t, reply.Error, "not initialized")

	reply = do(bridge.Request{Cmd: bridge.CmdOpen, Port: "/dev/ttyTEST"})
	require.True(t, reply.OK, reply.Error)

	reply = do(bridge.Request{Cmd: bridge.CmdSend, State: &state})
	require.True(t, reply.OK, reply.Error)
	wire := frame.Encode(state)
	require.Equal(t, wire[:], port.wbuf.Bytes())

	port.mu.Lock()
	port.rbuf.Write(wire[:])
	port.mu.Unlock()
	reply = do(bridge.Request{Cmd: bridge.CmdRead})
	require.True(t, reply.OK, reply.Error)
	require.Equal(t, state, *reply.State)
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := &Server{Addr: "127.0.0.1:0", Gateway: gateway.New()}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
