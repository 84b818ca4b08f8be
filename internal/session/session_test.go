package session

import (
	"context"
	"errors"
	"testing"

	"logotherapy-booking/internal/model"
)

type fakeBackend struct {
	user     *model.User
	writeErr error
	writes   int
}

func (f *fakeBackend) SessionUser(context.Context) (*model.User, error) {
	return f.user, nil
}

func (f *fakeBackend) SetSessionUser(_ context.Context, u *model.User) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	f.user = u
	return nil
}

func TestInitLowercasesStoredEmail(t *testing.T) {
	b := &fakeBackend{user: &model.User{Name: "Anna", Email: "Anna@Mail.com"}}
	m := NewManager(b)

	u, err := m.Init(context.Background())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if u.Email != "anna@mail.com" {
		t.Errorf("email not lowercased: %s", u.Email)
	}
	if got := m.Current(); got == nil || got.Email != "anna@mail.com" {
		t.Errorf("current: %+v", got)
	}
}

func TestCurrentUsesCache(t *testing.T) {
	b := &fakeBackend{}
	m := NewManager(b)
	m.Init(context.Background())

	// backend changes behind our back are not seen until the next Init
	b.user = &model.User{Email: "x@y.co"}
	if m.Current() != nil {
		t.Error("expected cached nil")
	}
}

func TestSaveAndClear(t *testing.T) {
	b := &fakeBackend{}
	m := NewManager(b)
	ctx := context.Background()

	if _, err := m.Save(ctx, &model.User{Name: "Anna", Email: "ANNA@mail.com"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if b.user.Email != "anna@mail.com" {
		t.Errorf("backend got %s", b.user.Email)
	}
	if m.Current().Email != "anna@mail.com" {
		t.Errorf("cache got %s", m.Current().Email)
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if m.Current() != nil || b.user != nil {
		t.Error("expected session cleared in cache and backend")
	}
}

func TestFailedWriteKeepsPreviousUser(t *testing.T) {
	b := &fakeBackend{}
	m := NewManager(b)
	ctx := context.Background()
	m.Save(ctx, &model.User{Email: "anna@mail.com"})

	b.writeErr = errors.New("disk full")
	if _, err := m.Save(ctx, &model.User{Email: "other@mail.com"}); err == nil {
		t.Fatal("expected error")
	}
	if m.Current().Email != "anna@mail.com" {
		t.Errorf("cache changed on failed save: %s", m.Current().Email)
	}
	if err := m.Clear(ctx); err == nil {
		t.Fatal("expected error")
	}
	if m.Current() == nil {
		t.Error("cache cleared on failed clear")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	m := NewManager(&fakeBackend{})
	m.Save(context.Background(), &model.User{Name: "Anna", Email: "anna@mail.com"})

	u := m.Current()
	u.Name = "Mutated"
	if m.Current().Name != "Anna" {
		t.Error("caller mutated the cached user")
	}

	m.Close()
	if m.Current() != nil {
		t.Error("expected nil after close")
	}
}
