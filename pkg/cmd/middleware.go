package cmd

// Middleware wraps a command (logging, permission checks, per-guild gates).
// The wrapped value remains a Command, so chains compose freely.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}
