// SPDX-License-Identifier: BSD-3-Clause

package threshold

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name                string
		value, low, high    int64
		wantLow, wantHigh   bool
	}{
		{"within bounds", 50, 0, 100, false, false},
		{"equal to low is not an alarm", 0, 0, 100, false, false},
		{"equal to high is not an alarm", 100, 0, 100, false, false},
		{"below low", -1, 0, 100, true, false},
		{"above high", 101, 0, 100, false, true},
		{"low equals high, value matches", 50, 50, 50, false, false},
		{"low equals high, value below", 49, 50, 50, true, false},
		{"low equals high, value above", 51, 50, 50, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.value, tc.low, tc.high)
			if got.AlarmLow != tc.wantLow || got.AlarmHigh != tc.wantHigh {
				t.Errorf("Evaluate(%d, %d, %d) = %+v, want {AlarmLow:%v AlarmHigh:%v}",
					tc.value, tc.low, tc.high, got, tc.wantLow, tc.wantHigh)
			}
		})
	}
}
