package main

import (
	"os"

	"clinic-directory/cmd/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
