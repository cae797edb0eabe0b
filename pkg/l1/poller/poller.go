// Package poller periodically reads the robot state and hands it to a
// publish callback, hoisting the GUI's polling loop server-side.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/armlink/pkg/l0/device"
	"github.com/robotalks/armlink/pkg/l0/frame"
	"github.com/robotalks/armlink/pkg/l1/gateway"
)

// DefaultInterval is used when Interval is unset.
const DefaultInterval = 500 * time.Millisecond

// Poller ticks at Interval, reads the state and publishes it. A failed
// read never stops the poller; retry policy is simply the next tick.
type Poller struct {
	Gateway  *gateway.Gateway
	Publish  func(frame.State)
	Interval time.Duration
}

// Run implements Runnable.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s, err := p.Gateway.ReadState()
			if err != nil {
				// A quiet line or an unopened device is normal here.
				if errors.Is(err, device.ErrReadTimeout) || errors.Is(err, device.ErrNotInitialized) {
					glog.V(2).Infof("poll: %v", err)
				} else {
					glog.Warningf("poll: %v", err)
				}
				continue
			}
			if p.Publish != nil {
				p.Publish(s)
			}
		}
	}
}
