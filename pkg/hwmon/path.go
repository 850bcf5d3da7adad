// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import "path/filepath"

// DefaultBasePath is the conventional mount point of the hwmon class directory.
const DefaultBasePath = "/sys/class/hwmon"

// BuildPath constructs the sysfs path for a sensor attribute file:
// <devicePath>/<type><instance>_<entry>. Entry may be empty, producing
// <devicePath>/<type><instance> (used by the bare PWM target file).
func BuildPath(devicePath string, key Key, entry string) string {
	name := key.String()
	if entry != "" {
		name += "_" + entry
	}
	return filepath.Join(devicePath, name)
}
