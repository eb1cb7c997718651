// Package server handles client requests for the JSON read API and the
// redirecting form mutation API
package server

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/log"
	"github.com/go-playground/log/handlers/console"

	"github.com/rthearn/ivory/config"
	"github.com/rthearn/ivory/db"
	"github.com/rthearn/ivory/util"
)

var (
	isWindows = runtime.GOOS == "windows"

	// Is assigned in ./daemon.go to control/spawn a daemon process. That
	// file is never compiled on Windows and this function is never
	// called.
	handleDaemon func(string)

	// CLI mode arguments and descriptions
	arguments = map[string]string{
		"start":   "start the ivory server",
		"stop":    "stop a running daemonised ivory server",
		"restart": "combination of stop + start",
		"debug":   "start server attached to the shell (default)",
		"help":    "print this help text",
	}
)

// Start parses command line arguments and initializes the server
func Start() {
	log.AddHandler(console.New(true), log.AllLevels...)

	flag.Usage = printUsage
	flag.Parse()
	arg := flag.Arg(0)
	if arg == "" {
		arg = "debug"
	}

	// Can't daemonise on Windows, so the only modes are "start" and
	// "help"
	if isWindows {
		switch arg {
		case "debug", "start":
			startServer()
		default:
			printUsage()
		}
	} else {
		handleDaemon(arg)
	}
}

// Constructs and prints the CLI help text
func printUsage() {
	os.Stderr.WriteString("Usage: ivory [OPTIONS]... [MODE]\n\nMODES:\n")

	toPrint := []string{"start"}
	if !isWindows {
		toPrint = append(toPrint, "stop", "restart")
	} else {
		arguments["debug"] = `alias of "start"`
	}
	toPrint = append(toPrint, "debug", "help")

	help := new(bytes.Buffer)
	for _, arg := range toPrint {
		fmt.Fprintf(help, "  %s\n    \t%s\n", arg, arguments[arg])
	}

	help.WriteString("\nOPTIONS:\n")
	os.Stderr.Write(help.Bytes())
	flag.PrintDefaults()

	os.Exit(1)
}

func startServer() {
	err := util.Waterfall(
		config.Load,
		config.Watch,
		db.LoadDB,
		startWebServer,
	)
	if err != nil {
		log.Fatal(err.Error())
	}
}
