package db

import (
	"encoding/base64"
	"errors"
	"sync"
	"testing"
)

func TestDecodeCredentials(t *testing.T) {
	if _, err := decodeCredentials("  "); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("err = %v, want ErrNoCredentials", err)
	}
	if _, err := decodeCredentials("not base64!"); err == nil {
		t.Fatal("expected a decode error")
	}

	want := `{"type":"service_account"}`
	got, err := decodeCredentials(base64.StdEncoding.EncodeToString([]byte(want)))
	if err != nil {
		t.Fatalf("decodeCredentials: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDocID(t *testing.T) {
	if got := docID(42); got != "42" {
		t.Fatalf("docID(42) = %q", got)
	}
	if got := docID(-1); got != "-1" {
		t.Fatalf("docID(-1) = %q", got)
	}
}

func TestInitAndCloseConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if c, err := InitFirestore(""); c != nil || !errors.Is(err, ErrNoCredentials) {
				t.Errorf("InitFirestore = %v, %v", c, err)
			}
		}()
		go func() {
			defer wg.Done()
			CloseFirestore()
		}()
	}
	wg.Wait()
}
