package helpers

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatalf("digest equals plaintext")
	}
	if !CheckPassword(digest, "correct horse battery staple") {
		t.Fatalf("CheckPassword rejected the original password")
	}
	if CheckPassword(digest, "correct horse battery stable") {
		t.Fatalf("CheckPassword accepted a different password")
	}
}

func TestCheckPassword_FailsClosedOnGarbageDigest(t *testing.T) {
	t.Parallel()

	if CheckPassword("not-a-bcrypt-digest", "anything") {
		t.Fatalf("CheckPassword accepted a garbage digest")
	}
	if CheckPassword("", "") {
		t.Fatalf("CheckPassword accepted empty digest")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical")
	}
}
