package main

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}

	for _, bad := range []string{"", "   ", " padded"} {
		if _, err := hashPassword(bad, bcrypt.MinCost); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
