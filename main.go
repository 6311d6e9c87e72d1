package main

import (
	"github.com/notargets/cortsurf/cmd"
)

func main() {
	cmd.Execute()
}
