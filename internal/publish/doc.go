// SPDX-License-Identifier: BSD-3-Clause

// Package publish owns the set of bus-visible sensor objects and emits
// change notifications over NATS, the message bus this daemon uses in place
// of the D-Bus stack the upstream design assumes as an external
// collaborator. Each Update method compares against stored state and
// publishes only on an actual difference, matching the "emit on change
// only" contract of §4.10; EmitObjectAdded publishes an object's initial
// snapshot unconditionally.
package publish
