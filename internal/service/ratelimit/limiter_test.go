package ratelimit

import "testing"

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("client-a", 3, 0.0001) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("client-a", 3, 0.0001) {
		t.Fatalf("fourth request should be rejected")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("client-a", 1, 0.0001) {
		t.Fatalf("client-a first request should be allowed")
	}
	if l.Allow("client-a", 1, 0.0001) {
		t.Fatalf("client-a second request should be rejected")
	}
	if !l.Allow("client-b", 1, 0.0001) {
		t.Fatalf("client-b should not share client-a's bucket")
	}
}
