package uploads

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestStoreSaveRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	payload := []byte("image payload")
	ref, err := store.Save(bytes.NewReader(payload), "photo.JPG")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(ref, Prefix+"/") {
		t.Errorf("unexpected reference %q", ref)
	}
	if !strings.HasSuffix(ref, ".jpg") {
		t.Errorf("extension not preserved (lowercased): %q", ref)
	}

	f, err := store.Open(ref)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("stored bytes differ from payload")
	}
}

func TestStoreUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := store.Save(strings.NewReader("x"), "same-name.png")
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = true
	}
}

func TestStoreRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ref, err := store.Save(strings.NewReader("x"), "a.png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(ref); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Open(ref); err == nil {
		t.Error("file still readable after remove")
	}
}
