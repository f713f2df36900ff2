package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tsukumogami/pienv/internal/errmsg"
)

// printInfo prints an informational message unless quiet mode is enabled.
func printInfo(a ...interface{}) {
	if !quietFlag {
		fmt.Println(a...)
	}
}

// printJSON marshals v to indented JSON on stdout.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}

// printError prints an error to stderr with suggestions, via errmsg.
func printError(err error) {
	errmsg.Fprint(os.Stderr, err)
}
