// Package sh provides the ishell backed interactive shell over a Gateway.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/armlink/pkg/l0/frame"
	"github.com/robotalks/armlink/pkg/l1/gateway"
)

// Shell wraps ishell with a gateway and the current device path.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell   *ishell.Shell
	Gateway *gateway.Gateway
	Port    string // empty until a device is open
}

const (
	shellKey       = "$shell"
	noDevicePrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell over the gateway.
func New(g *gateway.Gateway) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:   ishell.New(),
		Gateway: g,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(noDevicePrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command funcs requiring an open device.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Port == "" {
			c.Err(fmt.Errorf("no device open"))
			return
		}
		fn(c)
	}
}

// Open opens the device and updates the prompt.
func (s *Shell) Open(path string, baud int) error {
	if err := s.Gateway.Initialize(path, baud); err != nil {
		return err
	}
	s.Port = path
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", path))
	return nil
}

// PrintState prints a state in the selected output format.
func (s *Shell) PrintState(c *ishell.Context, state frame.State) {
	if s.OutputJSON {
		out, err := json.Marshal(&state)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Printf("J%v DI%v DO%v speed=%d\n",
		state.Joints, boolBits(state.DigitalIn), boolBits(state.DigitalOut), state.Speed)
}

func boolBits(flags [3]bool) [3]int {
	var bits [3]int
	for i, v := range flags {
		if v {
			bits[i] = 1
		}
	}
	return bits
}

// Run runs the shell, or processes args as a single command line.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(gateway.New()).Run(flag.Args()...)
}
