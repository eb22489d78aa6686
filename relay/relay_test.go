package relay

import "testing"

func TestSignKnownVector(t *testing.T) {
	secret := []byte("tripdesk-secret")
	body := []byte(`{"event":"inquiry-created","inquiryId":"q123"}`)

	got := Sign(secret, body)
	want := "oc28pYPoH+zCPUOZfTo671wquh+dVEegC1R5lYhKKjU="
	if got != want {
		t.Fatalf("Sign() = %q, want %q", got, want)
	}
}

func TestSignVaries(t *testing.T) {
	body := []byte(`{"event":"inquiry-created"}`)

	a := Sign([]byte("secret-a"), body)
	b := Sign([]byte("secret-b"), body)
	if a == b {
		t.Fatal("different secrets produced the same signature")
	}

	c := Sign([]byte("secret-a"), []byte(`{"event":"other"}`))
	if a == c {
		t.Fatal("different bodies produced the same signature")
	}

	if again := Sign([]byte("secret-a"), body); again != a {
		t.Fatal("signature is not deterministic")
	}
}
