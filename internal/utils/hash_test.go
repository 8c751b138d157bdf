package utils

import "testing"

func TestHashPassword(t *testing.T) {
	bcryptCost = 4
	t.Cleanup(func() { bcryptCost = 10 })

	h1, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected fresh salt per hash")
	}
	if h1 == "hunter2" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !CheckPassword(h1, "hunter2") || !CheckPassword(h2, "hunter2") {
		t.Fatalf("expected both hashes to verify")
	}
	if CheckPassword(h1, "hunter3") {
		t.Fatalf("wrong password verified")
	}
}
