// SPDX-License-Identifier: BSD-3-Clause

// Package sensorcfg resolves per-sensor configuration from the process
// environment. Every recognized key is uppercase and, for sensor-scoped
// settings, suffixed with "_<type><id>" (e.g. LABEL_temp1, WARNHI_fan3).
// Device-scoped settings carry no suffix (e.g. INTERVAL). Unknown keys are
// ignored, matching the upstream environment-variable convention this
// daemon's configuration model is derived from.
package sensorcfg
