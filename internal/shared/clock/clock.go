// Package clock menyediakan sumber waktu yang di-inject supaya aturan cuti
// tahunan/bulanan bisa diuji deterministik di batas tahun (31 Des vs 1 Jan).
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns the wall clock in UTC.
func System() Clock { return systemClock{} }

// Fixed returns a clock pinned at t, for tests.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }
