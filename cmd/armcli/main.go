package main

import (
	"github.com/robotalks/armlink/pkg/cli/sh"

	_ "github.com/robotalks/armlink/pkg/cli/cmds/arm"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
