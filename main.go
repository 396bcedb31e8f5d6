//
// Remora version 0.1
//
// A small Lisp with a hub. The hub runs scripts as services, each with its
// own environment; the REPL talks to whichever service is current. Start it
// with no arguments for a bare REPL, with the name of a script to run the
// script as a service, or with a hub command to begin from that command.
//

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tim-hardcastle/Remora/hub"
	"github.com/tim-hardcastle/Remora/repl"
	"github.com/tim-hardcastle/Remora/text"
)

func main() {

	fmt.Print(text.Logo())

	hb := hub.New(os.Stdin, os.Stdout)
	hb.Open()
	quit := false
	if len(os.Args) > 1 {
		argString := strings.Join(os.Args[1:], " ")
		if len(os.Args) == 2 {
			if _, err := os.Stat(os.Args[1]); err == nil {
				argString = "run " + os.Args[1]
			}
		}
		verb, args := hb.ParseHubCommand(argString)
		if verb != "error" {
			quit = hb.DoHubCommand("", "", verb, args)
		}
	}
	if !quit {
		repl.Start(hb, os.Stdin, os.Stdout)
	}
}
