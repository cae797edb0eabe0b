// Package arm provides shell commands for the arm bridge.
package arm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/armlink/pkg/cli/sh"
	"github.com/robotalks/armlink/pkg/l0/device"
	"github.com/robotalks/armlink/pkg/l0/frame"
	"github.com/robotalks/armlink/pkg/l1/bridge"
)

var (
	// PortsCmd lists available serial devices.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"p"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			ports, err := s.Gateway.ListPorts()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if ports == nil {
					ports = []string{}
				}
				out, err := json.Marshal(ports)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(ports) == 0 {
				c.Println("No serial devices found")
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// OpenCmd opens a device.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "PATH [BAUD]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("PATH required"))
				return
			}
			baud := bridge.DefaultBaud
			if len(c.Args) > 1 {
				val, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("invalid BAUD: %v", err))
					return
				}
				baud = val
			}
			if err := sh.ShellFrom(c).Open(c.Args[0], baud); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// SendCmd sends a full state.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "J1 J2 J3 J4 J5 J6 SPEED [DO1 DO2 DO3 [DI1 DI2 DI3]]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			state, err := parseState(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := sh.ShellFrom(c).Gateway.SendState(state); err != nil {
				c.Err(err)
				return
			}
			if !sh.ShellFrom(c).OutputJSON {
				c.Println("OK")
			}
		}),
	}

	// ReadCmd reads one state.
	ReadCmd = ishell.Cmd{
		Name:    "read",
		Aliases: []string{"r"},
		Help:    "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			state, err := s.Gateway.ReadState()
			if err != nil {
				c.Err(err)
				return
			}
			s.PrintState(c, state)
		}),
	}

	// WatchCmd reads states repeatedly. Read timeouts are skipped; any
	// other error stops the watch.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[COUNT]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			count := 10
			if len(c.Args) > 0 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val <= 0 {
					c.Err(fmt.Errorf("invalid COUNT"))
					return
				}
				count = val
			}
			s := sh.ShellFrom(c)
			for i := 0; i < count; i++ {
				state, err := s.Gateway.ReadState()
				if err != nil {
					if errors.Is(err, device.ErrReadTimeout) {
						continue
					}
					c.Err(err)
					return
				}
				s.PrintState(c, state)
			}
		}),
	}
)

func parseState(args []string) (state frame.State, err error) {
	if len(args) < 7 {
		return state, fmt.Errorf("J1..J6 and SPEED required")
	}
	for i := 0; i < 6; i++ {
		if state.Joints[i], err = parseByte(args[i]); err != nil {
			return state, fmt.Errorf("invalid J%d: %v", i+1, err)
		}
	}
	if state.Speed, err = parseByte(args[6]); err != nil {
		return state, fmt.Errorf("invalid SPEED: %v", err)
	}
	if len(args) > 7 {
		if err = parseFlags(args[7:], &state.DigitalOut); err != nil {
			return state, fmt.Errorf("invalid DO: %v", err)
		}
	}
	if len(args) > 10 {
		if err = parseFlags(args[10:], &state.DigitalIn); err != nil {
			return state, fmt.Errorf("invalid DI: %v", err)
		}
	}
	return state, nil
}

func parseByte(arg string) (byte, error) {
	val, err := strconv.ParseUint(arg, 10, 8)
	return byte(val), err
}

func parseFlags(args []string, flags *[3]bool) error {
	if len(args) < len(flags) {
		return fmt.Errorf("3 values required")
	}
	for i := range flags {
		val, err := strconv.ParseBool(args[i])
		if err != nil {
			return err
		}
		flags[i] = val
	}
	return nil
}

func init() {
	sh.AddCmds(
		&PortsCmd,
		&OpenCmd,
		&SendCmd,
		&ReadCmd,
		&WatchCmd,
	)
}
