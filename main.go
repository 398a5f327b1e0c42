package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gitlab.com/uiwait/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "uiwait"
	app.Version = "0.1"
	app.Usage = "Poll-based UI assertions against a live page"
	app.Commands = []*cli.Command{
		{
			Name:    "check",
			Aliases: []string{"c"},
			Usage:   "assert selectors are present on a page",
			Action:  clicmds.Check,
			Flags:   clicmds.CheckFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
