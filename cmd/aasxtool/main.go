// Command aasxtool decodes, encodes, validates and repairs AAS packages.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/cli"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cli.ExitError)
		}
	}()

	err := cli.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
