package core

import "testing"

func TestWakeObjectSignalGivePersistsAcrossOneTake(t *testing.T) {
	wo := NewWakeObject()

	wo.Signal()

	select {
	case <-wo:
	default:
		t.Fatalf("expected the pending give to be available for take")
	}
}

func TestWakeObjectSignalTwiceBeforeTakeOnlyUnblocksOnce(t *testing.T) {
	wo := NewWakeObject()

	wo.Signal()
	wo.Signal() // the give already pending; this is a no-op, not a queued second give

	select {
	case <-wo:
	default:
		t.Fatalf("expected the pending give to be available for take")
	}

	select {
	case <-wo:
		t.Fatalf("expected no second give queued from the second Signal")
	default:
	}
}
