// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

// Package gpio implements the narrow unlock/lock contract some hwmon fan
// sensors need before their tachometer input can be read: drive a chip-select
// line high, wait for the signal to stabilize, read, then drive the line low.
// It is built on github.com/warthog618/go-gpiocdev, the Linux GPIO character
// device ABI client.
package gpio
