package main

import (
	"fmt"
	"os"

	"github.com/billyoneal/instalog-go/internal/oserr"
	"github.com/billyoneal/instalog-go/internal/osfacade/scopes"
)

func main() {
	wow64, err := scopes.IsWow64()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oserr.ExitCode(err))
	}
	if wow64 {
		fmt.Fprintln(os.Stderr, "instalog: refusing to run under WOW64; invoke the 64-bit build")
		os.Exit(-1)
	}

	execute()
}
