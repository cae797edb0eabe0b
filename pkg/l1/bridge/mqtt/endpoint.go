package mqtt

import (
	"context"
	"encoding/json"

	"github.com/golang/glog"

	"github.com/robotalks/armlink/pkg/l0/frame"
	"github.com/robotalks/armlink/pkg/l1/bridge"
	"github.com/robotalks/armlink/pkg/l1/gateway"
)

// Endpoint serves bridge commands over MQTT. Commands arrive on
// <prefix><id>/cmd, replies go to <prefix><id>/msg, and state telemetry is
// retained on <prefix><id>/state.
type Endpoint struct {
	Queue   *Queue
	Gateway *gateway.Gateway
	ID      string
}

// Run implements Runnable. It connects the queue, serves commands until
// the context is canceled, and disconnects.
func (e *Endpoint) Run(ctx context.Context) error {
	token := e.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	defer e.Queue.Close()
	e.Queue.Sub(e.ID+"/cmd", e.handleCmd)
	defer e.Queue.Unsub(e.ID + "/cmd")
	glog.Infof("serving commands on %s%s/cmd", e.Queue.TopicPrefix, e.ID)
	<-ctx.Done()
	return ctx.Err()
}

// PublishState publishes retained state telemetry. Suitable as the
// poller's Publish callback.
func (e *Endpoint) PublishState(s frame.State) {
	payload, err := json.Marshal(&s)
	if err != nil {
		glog.Warningf("encode state: %v", err)
		return
	}
	e.Queue.PubWith(e.ID+"/state", payload, 0, true)
}

func (e *Endpoint) handleCmd(topic string, payload []byte) {
	e.Queue.Pub(e.ID+"/msg", bridge.DispatchPacket(e.Gateway, payload))
}
