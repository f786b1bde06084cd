package main

import (
	"fmt"
	"os"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/cli"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := cli.NewApp(config.Load())
	defer app.Close()

	return cli.NewRootCmd(app).Execute()
}
