package menu

import (
	"testing"
	"time"
)

// trackerAt returns a tracker whose clock the test controls through the
// returned setter.
func trackerAt(base time.Time) (*Tracker, func(time.Time)) {
	tr := NewTracker()
	clock := base
	tr.now = func() time.Time { return clock }
	return tr, func(now time.Time) { clock = now }
}

func TestTrackerSweep(t *testing.T) {
	base := time.Now()
	tr, _ := trackerAt(base)
	fired := 0
	tr.Track("m1", func() { fired++ })

	tr.sweep(base.Add(SessionTimeout - time.Second))
	if fired != 0 {
		t.Fatal("session expired before its deadline")
	}

	tr.sweep(base.Add(SessionTimeout + time.Second))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	tr.sweep(base.Add(2 * SessionTimeout))
	if fired != 1 {
		t.Fatalf("expiry ran again on a dropped session, fired = %d", fired)
	}
}

func TestTrackerTouchExtends(t *testing.T) {
	base := time.Now()
	tr, setClock := trackerAt(base)
	fired := false
	tr.Track("m1", func() { fired = true })

	setClock(base.Add(200 * time.Second))
	tr.Touch("m1")

	tr.sweep(base.Add(SessionTimeout + time.Second))
	if fired {
		t.Fatal("touched session expired on its original deadline")
	}

	tr.sweep(base.Add(200*time.Second + SessionTimeout + time.Second))
	if !fired {
		t.Fatal("session never expired after the touched deadline passed")
	}
}

func TestTrackerForget(t *testing.T) {
	base := time.Now()
	tr, _ := trackerAt(base)
	fired := false
	tr.Track("m1", func() { fired = true })
	tr.Forget("m1")
	tr.sweep(base.Add(2 * SessionTimeout))
	if fired {
		t.Fatal("forgotten session still fired")
	}
}

func TestTrackerSessionsIndependent(t *testing.T) {
	base := time.Now()
	tr, setClock := trackerAt(base)
	var firedA, firedB bool

	tr.Track("msgA", func() { firedA = true })
	tr.Track("msgB", func() { firedB = true })
	setClock(base.Add(100 * time.Second))
	tr.Touch("msgB")

	tr.sweep(base.Add(SessionTimeout + time.Second))
	if !firedA {
		t.Error("idle session did not expire")
	}
	if firedB {
		t.Error("active session expired alongside an unrelated idle one")
	}
}

func TestTrackerTouchUnknownKey(t *testing.T) {
	tr := NewTracker()
	tr.Touch("gone")
	tr.Forget("gone")
}
