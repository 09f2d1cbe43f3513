package main

import (
	"fmt"
	"os"

	"github.com/anthanhphan/go-media-cms/cmd/cms/cli"
)

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewServeCommand())
	root.AddCommand(cli.NewReconcileCommand())
	root.AddCommand(cli.NewVersionCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
