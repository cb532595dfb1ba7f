package handlers

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
)

// ErrUsage is returned when a command is unknown or its arguments are malformed.
var ErrUsage = errors.New("usage error")

// CommandFunc runs a subcommand. Human readable output goes to out; diagnostics go
// to the logger carried by ctx.
type CommandFunc func(ctx context.Context, args []string, out io.Writer) error

type command struct {
	usage string
	run   CommandFunc
}

// Router dispatches subcommands by name.
type Router struct {
	commands map[string]command
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{commands: make(map[string]command)}
}

// Handle registers fn under name.
func (r *Router) Handle(name, usage string, fn CommandFunc) {
	r.commands[name] = command{usage: usage, run: fn}
}

// Dispatch runs the command named by args[0] with the remaining arguments.
func (r *Router) Dispatch(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	cmd, ok := r.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd.run(ctx, args[1:], out)
}

// Usage lists the registered commands in name order.
func (r *Router) Usage(w io.Writer) {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", name, r.commands[name].usage)
	}
}

// parseArgs parses flags into fs and checks the positional argument count.
func parseArgs(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	if fs.NArg() != positional {
		return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrUsage, fs.Name(), positional, fs.NArg())
	}
	return fs.Args(), nil
}
