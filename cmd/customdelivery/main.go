// Package main is the entry point for the customdelivery operator CLI.
package main

import (
	"context"
	"os"

	"github.com/smallbiznis/customdelivery/cmd/customdelivery/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
