package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

func TestUpdateDisplayName_NotLoggedIn(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvcForTest(t)

	requireDomainCode(t, svc.UpdateDisplayName(context.Background(), "", "x"), domain.CodeNotLoggedIn)
	requireDomainCode(t, svc.UpdateDisplayName(context.Background(), "ghost@x.com", "x"), domain.CodeNotLoggedIn)
}

// An anonymous caller with an empty name is told to log in, not that the field is missing.
func TestUpdateDisplayName_NotLoggedInWinsOverMissingField(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvcForTest(t)

	requireDomainCode(t, svc.UpdateDisplayName(context.Background(), "", ""), domain.CodeNotLoggedIn)
}

func TestUpdateDisplayName_Empty_MissingField(t *testing.T) {
	t.Parallel()

	svc, store, _ := newSvcForTest(t, domain.NewUserRecord("a@x.com", "p"))

	requireDomainCode(t, svc.UpdateDisplayName(context.Background(), "a@x.com", ""), domain.CodeMissingField)
	if store.saves != 0 {
		t.Fatalf("store must be unchanged")
	}
}

func TestUpdateDisplayName_Success(t *testing.T) {
	t.Parallel()

	svc, store, audits := newSvcForTest(t, domain.NewUserRecord("a@x.com", "p"))
	ctx := context.Background()

	if err := svc.UpdateDisplayName(ctx, "a@x.com", "Alice"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got := store.snapshot(t)[0].DisplayName; got != "Alice" {
		t.Fatalf("expected Alice, got %q", got)
	}
	requireAuditAction(t, audits, "display_name_updated")

	p, err := svc.GetProfile(ctx, "a@x.com")
	if err != nil || p.DisplayName != "Alice" {
		t.Fatalf("profile: %+v err=%v", p, err)
	}
}

func TestUpdateDisplayName_Unbounded(t *testing.T) {
	t.Parallel()

	svc, store, _ := newSvcForTest(t, domain.NewUserRecord("a@x.com", "p"))
	long := strings.Repeat("n", 1<<16)

	if err := svc.UpdateDisplayName(context.Background(), "a@x.com", long); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(store.snapshot(t)[0].DisplayName) != len(long) {
		t.Fatalf("display name truncated")
	}
}

func TestUpdateProfilePicture_Success_PassesThroughOpaqueData(t *testing.T) {
	t.Parallel()

	svc, store, _ := newSvcForTest(t, domain.NewUserRecord("a@x.com", "p"))
	img := "data:image/png;base64,not-really-a-png"

	if err := svc.UpdateProfilePicture(context.Background(), "a@x.com", img); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	got := store.snapshot(t)[0].ProfilePicture
	if got == nil || *got != img {
		t.Fatalf("expected picture stored verbatim, got %v", got)
	}
}

func TestUpdateProfilePicture_Errors(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvcForTest(t, domain.NewUserRecord("a@x.com", "p"))
	ctx := context.Background()

	requireDomainCode(t, svc.UpdateProfilePicture(ctx, "", "img"), domain.CodeNotLoggedIn)
	requireDomainCode(t, svc.UpdateProfilePicture(ctx, "a@x.com", ""), domain.CodeMissingField)
}

func TestUpdateProfilePicture_LeavesOtherFieldsAlone(t *testing.T) {
	t.Parallel()

	legacy := domain.UserRecord{Email: "old@x.com", Password: "p", ProfilePicture: strPtr("before")}
	svc, store, _ := newSvcForTest(t, legacy)

	if err := svc.UpdateProfilePicture(context.Background(), "old@x.com", "after"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	u := store.snapshot(t)[0]
	if u.Role != "" || u.DisplayName != "" || u.Password != "p" {
		t.Fatalf("unrelated fields changed: %+v", u)
	}
	if *u.ProfilePicture != "after" {
		t.Fatalf("expected after, got %q", *u.ProfilePicture)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	svc, store, _ := newSvcForTest(t)
	if err := svc.Ready(context.Background()); err != nil {
		t.Fatalf("expected ready, got %v", err)
	}
	store.loadErr = errBoom
	requireDomainCode(t, svc.Ready(context.Background()), domain.CodeStoreUnavailable)
}
