package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/armlink/pkg/framework"
	"github.com/robotalks/armlink/pkg/l1/bridge"
	"github.com/robotalks/armlink/pkg/l1/bridge/mqtt"
	ws "github.com/robotalks/armlink/pkg/l1/bridge/websocket"
	"github.com/robotalks/armlink/pkg/l1/gateway"
	"github.com/robotalks/armlink/pkg/l1/poller"
)

var conf = struct {
	Device       string
	Baud         int
	BrokerURL    string
	ListenAddr   string
	BridgeID     string
	PollInterval time.Duration
}{
	Baud:         bridge.DefaultBaud,
	BrokerURL:    "mqtt://localhost:1883/armlink/",
	PollInterval: poller.DefaultInterval,
}

func init() {
	if val := os.Getenv("ARMLINK_DEVICE"); val != "" {
		conf.Device = val
	}
	if val := os.Getenv("ARMLINK_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			conf.Baud = baud
		}
	}
	if val := os.Getenv("ARMLINK_BROKER_URL"); val != "" {
		conf.BrokerURL = val
	}
	if val := os.Getenv("ARMLINK_BRIDGE_ID"); val != "" {
		conf.BridgeID = val
	}
}

func main() {
	flag.StringVar(&conf.Device, "device", conf.Device, "Serial device path to open at start.")
	flag.IntVar(&conf.Baud, "baud", conf.Baud, "Baud rate.")
	flag.StringVar(&conf.BrokerURL, "broker", conf.BrokerURL, "MQTT broker URL.")
	flag.StringVar(&conf.ListenAddr, "listen", conf.ListenAddr, "Websocket listen address (empty to disable).")
	flag.StringVar(&conf.BridgeID, "bridge-id", conf.BridgeID, "Bridge ID (defaults to machine ID).")
	flag.DurationVar(&conf.PollInterval, "poll", conf.PollInterval, "State poll interval (0 to disable).")
	flag.Parse()

	g := gateway.New()
	if conf.Device != "" {
		if err := g.Initialize(conf.Device, conf.Baud); err != nil {
			glog.Exitln(err)
		}
	}
	defer g.Close()

	id := conf.BridgeID
	if id == "" {
		id = bridge.MachineID()
	}
	glog.Infof("bridge id %s", id)

	queue, err := mqtt.NewQueueFromURL(conf.BrokerURL)
	if err != nil {
		glog.Exitln(err)
	}
	endpoint := &mqtt.Endpoint{Queue: queue, Gateway: g, ID: id}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("mqtt", endpoint))
	if conf.PollInterval > 0 {
		runner.Go(fx.NamedRun("poller", &poller.Poller{
			Gateway:  g,
			Publish:  endpoint.PublishState,
			Interval: conf.PollInterval,
		}))
	}
	if conf.ListenAddr != "" {
		runner.Go(fx.NamedRun("websocket", &ws.Server{Addr: conf.ListenAddr, Gateway: g}))
	}
	if err := runner.Wait(); err != nil {
		glog.Exitln(err)
	}
}
