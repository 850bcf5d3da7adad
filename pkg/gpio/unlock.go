// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package gpio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// StabilizationDelay is the fixed pause between driving a chip-select line
// high and reading the gated sensor, matching the upstream hwmon daemon's
// GPIO unlock timing.
const StabilizationDelay = 500 * time.Millisecond

// Unlocker is the contract the poll loop depends on; it never imports
// go-gpiocdev directly.
type Unlocker interface {
	// Unlock drives chip/line high and blocks for StabilizationDelay (or
	// until ctx is done, whichever comes first).
	Unlock(ctx context.Context, chip string, line int) error
	// Lock drives chip/line low. Called unconditionally after a read attempt,
	// successful or not, to avoid leaving the gate open.
	Lock(ctx context.Context, chip string, line int) error
}

// lineKey identifies one requested GPIO line across chip boundaries.
type lineKey struct {
	chip string
	line int
}

// Controller is the default Unlocker. It requests the line handle once in
// Unlock and holds it open across the stabilization wait and the caller's
// intervening sensor read, releasing it only when the matching Lock call
// arrives - mirroring the upstream gpio_handle, which keeps its handle open
// across the same window rather than reopening the line to drive it low.
type Controller struct {
	mu    sync.Mutex
	lines map[lineKey]*gpiocdev.Line
}

// NewController returns the default gpiocdev-backed Unlocker.
func NewController() *Controller {
	return &Controller{lines: make(map[lineKey]*gpiocdev.Line)}
}

// Unlock implements Unlocker.
func (c *Controller) Unlock(ctx context.Context, chip string, line int) error {
	l, err := gpiocdev.RequestLine(chip, line,
		gpiocdev.AsOutput(1),
		gpiocdev.WithConsumer("hwmond"),
	)
	if err != nil {
		return mapGpiocdevError(err, chip, line)
	}

	key := lineKey{chip: chip, line: line}
	c.mu.Lock()
	c.lines[key] = l
	c.mu.Unlock()

	t := time.NewTimer(StabilizationDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		c.release(key, 0)
		return ctx.Err()
	}
}

// Lock implements Unlocker. It drives the line low on the handle Unlock
// opened and then releases it; a Lock with no matching open handle (Unlock
// never succeeded, or a prior ctx-cancellation path already released it)
// is a no-op.
func (c *Controller) Lock(ctx context.Context, chip string, line int) error {
	key := lineKey{chip: chip, line: line}
	c.mu.Lock()
	l, ok := c.lines[key]
	delete(c.lines, key)
	c.mu.Unlock()
	if !ok {
		return nil
	}

	err := l.SetValue(0)
	_ = l.Close()
	if err != nil {
		return mapGpiocdevError(err, chip, line)
	}
	return nil
}

// release drives key's open line to value and closes it, used when Unlock's
// stabilization wait is cut short by context cancellation.
func (c *Controller) release(key lineKey, value int) {
	c.mu.Lock()
	l, ok := c.lines[key]
	delete(c.lines, key)
	c.mu.Unlock()
	if !ok {
		return
	}
	_ = l.SetValue(value)
	_ = l.Close()
}

func mapGpiocdevError(err error, chip string, line int) error {
	switch {
	case errors.Is(err, syscall.ENOENT):
		return fmt.Errorf("%w: chip %q line %d", ErrChipNotFound, chip, line)
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return fmt.Errorf("%w: chip %q line %d", ErrPermissionDenied, chip, line)
	case errors.Is(err, gpiocdev.ErrNotFound):
		return fmt.Errorf("%w: chip %q line %d", ErrLineNotFound, chip, line)
	default:
		return fmt.Errorf("%w: chip %q line %d: %w", ErrOperationFailed, chip, line, err)
	}
}
