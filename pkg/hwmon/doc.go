// SPDX-License-Identifier: BSD-3-Clause

// Package hwmon implements the sysfs contract exposed by the Linux hwmon
// subsystem: path construction, resilient attribute I/O, and directory
// discovery.
//
// A hwmon device directory (/sys/class/hwmon/hwmon<N>) contains one file per
// sensor attribute, named "<type><instance>_<entry>" (e.g. temp1_input,
// fan2_target). This package knows how to build those paths, how to read and
// write them with bounded retry, and how to classify the resulting sysfs
// errors (device gone, transient, or fatal) so callers can react without
// reasoning about errno directly.
//
// hwmon does not decide what to do with a classified error - that policy
// (exit(0) on device-gone, continue on transient, exit(1) on fatal write
// failure) belongs to the daemon loop in service/hwmond.
package hwmon
