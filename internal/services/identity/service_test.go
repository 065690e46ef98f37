package identity_test

import (
	"errors"
	"testing"

	"pogo/internal/auth"
	"pogo/internal/domain"
	"pogo/internal/services/identity"
	"pogo/internal/store"
)

const goodPass = "Correct-Horse-9!"

func TestLogin_RejectsWeakPassphrase(t *testing.T) {
	svc := identity.New(store.NewCredentialFileStore(t.TempDir()))
	if _, err := svc.Login("short", "google", "tok", false); !errors.Is(err, identity.ErrWeakPassphrase) {
		t.Fatalf("want ErrWeakPassphrase, got %v", err)
	}
}

func TestLogin_RejectsUnknownProvider(t *testing.T) {
	svc := identity.New(store.NewCredentialFileStore(t.TempDir()))
	if _, err := svc.Login(goodPass, "myspace", "tok", false); !errors.Is(err, auth.ErrUnknownProvider) {
		t.Fatalf("want ErrUnknownProvider, got %v", err)
	}
}

func TestLoginThenOpen(t *testing.T) {
	svc := identity.New(store.NewCredentialFileStore(t.TempDir()))

	fp, err := svc.Login(goodPass, "PTC", "TGT-abc", true)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(fp) != 20 {
		t.Fatalf("fingerprint %q", fp)
	}

	sess, err := svc.Open(goodPass)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sess.Provider() != domain.ProviderPTC || sess.AccessToken() != "TGT-abc" {
		t.Fatalf("unexpected session %s/%s", sess.Provider(), sess.AccessToken())
	}
	if sess.Signer() == nil {
		t.Fatal("expected a signer")
	}

	again, err := svc.Fingerprint(goodPass)
	if err != nil || again != fp {
		t.Fatalf("fingerprint mismatch: %q vs %q (%v)", again, fp, err)
	}
}

func TestOpen_WithoutSignerKey(t *testing.T) {
	svc := identity.New(store.NewCredentialFileStore(t.TempDir()))
	if _, err := svc.Login(goodPass, "google", "tok", false); err != nil {
		t.Fatalf("login: %v", err)
	}
	sess, err := svc.Open(goodPass)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sess.Signer() != nil {
		t.Fatal("expected no signer")
	}
}
