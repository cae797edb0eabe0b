// Package bridge defines the JSON command envelope shared by the remote
// endpoints (MQTT, websocket) and dispatches commands to the gateway.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/robotalks/armlink/pkg/l0/frame"
	"github.com/robotalks/armlink/pkg/l1/gateway"
)

// Command names accepted by Dispatch.
const (
	CmdPorts = "ports"
	CmdOpen  = "open"
	CmdSend  = "send"
	CmdRead  = "read"
)

// DefaultBaud is used when an open request omits the rate.
const DefaultBaud = 115200

// Request is one command from a remote collaborator.
type Request struct {
	Cmd   string       `json:"cmd"`
	Port  string       `json:"port,omitempty"`
	Baud  int          `json:"baud,omitempty"`
	State *frame.State `json:"state,omitempty"`
}

// Reply is the result of one Request. Error carries the caller-facing
// message when OK is false.
type Reply struct {
	OK    bool         `json:"ok"`
	Error string       `json:"error,omitempty"`
	Ports []string     `json:"ports,omitempty"`
	State *frame.State `json:"state,omitempty"`
}

// Dispatch executes one request against the gateway.
func Dispatch(g *gateway.Gateway, req Request) Reply {
	switch req.Cmd {
	case CmdPorts:
		ports, err := g.ListPorts()
		if err != nil {
			return errReply(err)
		}
		if ports == nil {
			ports = []string{}
		}
		return Reply{OK: true, Ports: ports}
	case CmdOpen:
		if req.Port == "" {
			return Reply{Error: "port required"}
		}
		baud := req.Baud
		if baud == 0 {
			baud = DefaultBaud
		}
		if err := g.Initialize(req.Port, baud); err != nil {
			return errReply(err)
		}
		return Reply{OK: true}
	case CmdSend:
		if req.State == nil {
			return Reply{Error: "state required"}
		}
		if err := g.SendState(*req.State); err != nil {
			return errReply(err)
		}
		return Reply{OK: true}
	case CmdRead:
		s, err := g.ReadState()
		if err != nil {
			return errReply(err)
		}
		return Reply{OK: true, State: &s}
	}
	return Reply{Error: fmt.Sprintf("unknown command %q", req.Cmd)}
}

// DispatchPacket decodes a JSON request, dispatches it and encodes the
// reply. A malformed request produces an error reply, never a dropped
// packet.
func DispatchPacket(g *gateway.Gateway, pkt []byte) []byte {
	var reply Reply
	var req Request
	if err := json.Unmarshal(pkt, &req); err != nil {
		reply = Reply{Error: "bad request: " + err.Error()}
	} else {
		reply = Dispatch(g, req)
	}
	out, err := json.Marshal(reply)
	if err != nil {
		// Reply marshaling can only fail on exotic state values; keep
		// the peer informed regardless.
		out = []byte(`{"ok":false,"error":"reply encoding failed"}`)
	}
	return out
}

func errReply(err error) Reply {
	return Reply{Error: err.Error()}
}
