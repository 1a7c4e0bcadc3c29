// The reacto command runs demos of the reactive event runtime.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use: "reacto",
	Short: "Reacto CLI runs demo applications built on the reactive event " +
		"runtime.",
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
