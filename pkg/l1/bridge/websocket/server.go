// Package websocket serves bridge commands over a websocket endpoint.
// Each received message is one JSON request; each reply is one message.
package websocket

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/armlink/pkg/framework"
	"github.com/robotalks/armlink/pkg/l1/bridge"
	"github.com/robotalks/armlink/pkg/l1/gateway"
)

// Server accepts websocket connections and dispatches their commands.
type Server struct {
	Addr    string
	Gateway *gateway.Gateway
}

// Handler returns the http.Handler serving the endpoint, exposed
// separately so tests can mount it on a test server.
func (s *Server) Handler() http.Handler {
	return websocket.Handler(s.serveConn)
}

// Run implements Runnable. The listener is closed when the context is
// canceled, which unblocks Serve.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	glog.Infof("websocket listening on %s", ln.Addr())
	srv := &http.Server{Handler: s.Handler()}
	return fx.RunWithContextCloser(ctx, ln, func() error {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			err = nil
		}
		return err
	})
}

func (s *Server) serveConn(conn *websocket.Conn) {
	defer conn.Close()
	glog.V(1).Infof("client connected: %s", conn.Request().RemoteAddr)
	for {
		var pkt []byte
		if err := websocket.Message.Receive(conn, &pkt); err != nil {
			glog.V(1).Infof("client gone: %v", err)
			return
		}
		if err := websocket.Message.Send(conn, bridge.DispatchPacket(s.Gateway, pkt)); err != nil {
			glog.Warningf("send reply: %v", err)
			return
		}
	}
}
