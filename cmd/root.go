package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "loopcast"}

	root.AddCommand(generateCMD(), daemonCMD())
	_ = root.Execute()
}
