package ratelimit

import "testing"

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1", 3, 0) {
			t.Fatalf("attempt %d denied within burst", i+1)
		}
	}
	if l.Allow("10.0.0.1", 3, 0) {
		t.Fatal("attempt past burst allowed with no refill")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		l.Allow("10.0.0.1", 3, 0)
	}
	if !l.Allow("10.0.0.2", 3, 0) {
		t.Fatal("second key throttled by first key's bucket")
	}
}
