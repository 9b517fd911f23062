package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "password" {
		t.Fatal("hash must not equal plaintext")
	}

	if err := h.Compare(hash, "password"); err != nil {
		t.Fatalf("compare failed for correct password: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error for wrong password")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	for _, cost := range []int{0, -3} {
		h := NewBcryptHasher(cost)
		if h.cost <= 0 {
			t.Fatalf("expected default cost for %d, got %d", cost, h.cost)
		}
	}
}
