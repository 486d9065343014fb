package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsets/fs"
	"github.com/fwojciec/docsets/lifecycle"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Layout     fs.Layout
	Controller *lifecycle.Controller
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Configuration file" env:"DOCSETS_CONFIG" type:"path"`
	DataDir string `name:"data-dir" help:"Data directory" env:"DOCSETS_DATA" type:"path"`

	Refresh RefreshCmd `cmd:"" help:"Fetch the docset catalog"`
	List    ListCmd    `cmd:"" help:"List known docsets"`
	Install InstallCmd `cmd:"" help:"Download and install a docset"`
	Remove  RemoveCmd  `cmd:"" help:"Remove an installed docset"`
	Search  SearchCmd  `cmd:"" help:"Search entries of installed docsets"`
	Open    OpenCmd    `cmd:"" help:"Write a redirect page for an entry"`
	Serve   ServeCmd   `cmd:"" help:"Serve the index as MCP tools over stdio"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Installed bool `short:"i" help:"Only show installed docsets"`
}

// InstallCmd is the "install" subcommand.
type InstallCmd struct {
	Name string `arg:"" help:"Docset name"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	Name  string `arg:"" help:"Docset name"`
	Force bool   `help:"Confirm removal"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Text to look for in entry names"`
	Limit int    `short:"n" default:"20" help:"Maximum number of results"`
}

// OpenCmd is the "open" subcommand.
type OpenCmd struct {
	Query string `arg:"" help:"Entry name"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
