// Package lockscreen drives the one-shot update of the lock screen image
// policy value.
package lockscreen

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pink-tools/pink-lockscreen/internal/winreg"
)

// Store is the subset of *winreg.Accessor the controller needs.
type Store interface {
	ReadString(hive winreg.Hive, path, name string) (string, bool, error)
	WriteString(hive winreg.Hive, path, name, value string) error
}

type State int

const (
	StateStart State = iota
	StateUpdated
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateUpdated:
		return "updated"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const absent = "absent"

type Controller struct {
	Store Store
	Out   io.Writer

	Hive         winreg.Hive
	Key          string
	Value        string
	DefaultImage string

	// OnFailure receives failures that do not stop the run.
	OnFailure func(ctx context.Context, msg string, err error)

	state State
}

// State reports how far the last Run got.
func (c *Controller) State() State {
	return c.state
}

// Run prints the current value, writes args[0] (or the default image) and
// prints the value read back. Only an access-denied write stops the run; its
// message is printed and the *winreg.AccessDeniedError is returned.
func (c *Controller) Run(ctx context.Context, args []string) error {
	c.state = StateStart

	fmt.Fprintf(c.Out, "Current Lock Screen image: %s\n", c.current(ctx))

	newLocation := c.DefaultImage
	if len(args) > 0 {
		newLocation = args[0]
	}

	fmt.Fprintf(c.Out, "Trying to set %s as Lock Screen image...\n", newLocation)
	if err := c.Store.WriteString(c.Hive, c.Key, c.Value, newLocation); err != nil {
		if errors.Is(err, winreg.ErrAccessDenied) {
			fmt.Fprintln(c.Out, err.Error())
			c.state = StateDone
			return err
		}
		c.fail(ctx, "failed to set lock screen image", err)
	}
	c.state = StateUpdated

	fmt.Fprintf(c.Out, "New Lock Screen Image = %s\n", c.current(ctx))
	c.state = StateDone
	return nil
}

func (c *Controller) current(ctx context.Context) string {
	val, found, err := c.Store.ReadString(c.Hive, c.Key, c.Value)
	if err != nil {
		c.fail(ctx, "failed to read lock screen image", err)
		return absent
	}
	if !found {
		return absent
	}
	return val
}

func (c *Controller) fail(ctx context.Context, msg string, err error) {
	if c.OnFailure != nil {
		c.OnFailure(ctx, msg, err)
	}
}
