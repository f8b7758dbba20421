package sharetokens

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/kiview/internal/common"
)

func TestIssue_StoresRandomToken(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, time.Hour)

	token, err := svc.Issue(context.Background(), "u1", "boards/main.kicad_pcb")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if len(token) != tokenByteSize*2 {
		t.Fatalf("expected %d hex chars, got %d", tokenByteSize*2, len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}

	stored, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("stored token not found: %v", err)
	}
	if stored.UserID != "u1" || stored.FilePath != "boards/main.kicad_pcb" {
		t.Fatalf("unexpected record: %+v", stored)
	}
}

func TestRedeem_BeforeExpiry(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, time.Hour)

	token, err := svc.Issue(context.Background(), "u1", "p/f.kicad_sch")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := svc.Redeem(context.Background(), token)
	if err != nil {
		t.Fatalf("Redeem error: %v", err)
	}
	if got.FilePath != "p/f.kicad_sch" {
		t.Fatalf("unexpected file path: %q", got.FilePath)
	}
}

func TestRedeem_Unknown(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour)

	_, err := svc.Redeem(context.Background(), "deadbeef")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestRedeem_ExpiredThenGone(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, time.Hour)

	token, err := svc.Issue(context.Background(), "u1", "p/f.kicad_pcb")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// advance past expiry
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.Redeem(context.Background(), token)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// the expiry check discards the token: a second redeem is a plain miss
	_, err = svc.Redeem(context.Background(), token)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound after discard, got %v", err)
	}
}

func TestMemoryStore_ConcurrentPutGet(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, time.Hour)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				token, err := svc.Issue(context.Background(), "u", "p")
				if err != nil {
					t.Errorf("Issue error: %v", err)
					return
				}
				if _, err := svc.Redeem(context.Background(), token); err != nil {
					t.Errorf("Redeem error: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
