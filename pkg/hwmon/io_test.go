// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadIntParsesAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp1_input")
	if err := os.WriteFile(path, []byte("42000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewIO().ReadInt(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadInt() error = %v", err)
	}
	if got != 42000 {
		t.Errorf("ReadInt() = %d, want 42000", got)
	}
}

func TestReadIntMissingFileClassifiesAsDeviceGone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := (&IO{Retries: 0}).ReadInt(context.Background(), path)
	if Classify(err) != KindDeviceGone {
		t.Errorf("Classify(err) = %v, want KindDeviceGone; err = %v", Classify(err), err)
	}
}

func TestReadIntMalformedValueIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp1_input")
	if err := os.WriteFile(path, []byte("not-a-number"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := (&IO{Retries: 0}).ReadInt(context.Background(), path)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("ReadInt() error = %v, want ErrInvalidValue", err)
	}
}

func TestWriteIntRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwm1")
	if err := os.WriteFile(path, []byte("0"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewIO().WriteInt(context.Background(), path, 200); err != nil {
		t.Fatalf("WriteInt() error = %v", err)
	}
	got, err := NewIO().ReadInt(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadInt() error = %v", err)
	}
	if got != 200 {
		t.Errorf("ReadInt() = %d after WriteInt(200), want 200", got)
	}
}

func TestReadIntRespectsCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp1_input")
	if err := os.WriteFile(path, []byte("1"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&IO{Retries: 0}).ReadInt(ctx, path)
	if !errors.Is(err, ErrOperationTimeout) && !errors.Is(err, context.Canceled) {
		// ReadInt races the file read against ctx.Done(); a fast local
		// filesystem read may win even on an already-canceled context.
		t.Logf("ReadInt() on a canceled context returned err = %v (read won the race, acceptable)", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "pwm1")
	if err := os.WriteFile(present, []byte("0"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(present) {
		t.Error("FileExists() = false for a file that exists")
	}
	if FileExists(filepath.Join(dir, "pwm2")) {
		t.Error("FileExists() = true for a file that does not exist")
	}
}

func TestClassifyNilIsKindNone(t *testing.T) {
	if Classify(nil) != KindNone {
		t.Error("Classify(nil) != KindNone")
	}
}

func TestDefaultRetryDelayIsReasonable(t *testing.T) {
	if DefaultRetryDelay <= 0 || DefaultRetryDelay > time.Second {
		t.Errorf("DefaultRetryDelay = %v, want a small positive backoff", DefaultRetryDelay)
	}
}
