package main

import (
	"fmt"

	qahttp "github.com/fwojciec/qalink/http"
	"github.com/fwojciec/qalink/search"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	resolver := search.NewResolver(deps.Store, c.strategy(deps), deps.Logger)

	opts := []qahttp.Option{
		qahttp.WithAddr(c.Addr),
		qahttp.WithLogger(deps.Logger),
	}
	if deps.SearchLog != nil {
		opts = append(opts, qahttp.WithSearchLog(deps.SearchLog))
	}

	srv := qahttp.NewServer(resolver, opts...)
	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to start server on %q: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "listening on %s\n", srv.URL())

	<-deps.Ctx.Done()
	fmt.Fprintln(deps.Stdout, "shutting down")
	return srv.Close()
}
