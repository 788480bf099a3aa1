package main

import (
	"context"
	"fmt"
	"os"

	"github.com/salespilots/platform/internal/admin"
	"github.com/salespilots/platform/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	cli := admin.New(cfg, os.Stdout)
	if err := cli.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
