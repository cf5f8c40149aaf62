package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Faultbox/grf-graphics/pkg/formats"
	"github.com/Faultbox/grf-graphics/pkg/grf"
)

func writeArchive(t *testing.T, name string, files ...grf.File) string {
	t.Helper()
	var buf bytes.Buffer
	if err := grf.WriteArchive(&buf, files); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPriority(t *testing.T) {
	base := writeArchive(t, "data.grf",
		grf.File{Name: "data/a.txt", Data: []byte("base a")},
		grf.File{Name: "data/b.txt", Data: []byte("base b")},
	)
	patch := writeArchive(t, "rdata.grf",
		grf.File{Name: "data/a.txt", Data: []byte("patched a")},
	)

	m := NewManager(false)
	defer m.Close()
	for _, p := range []string{base, patch} {
		if err := m.AddArchive(p); err != nil {
			t.Fatal(err)
		}
	}
	if m.Archives() != 2 {
		t.Fatalf("Archives = %d", m.Archives())
	}

	tests := []struct {
		path, want string
	}{
		{"data/a.txt", "patched a"},
		{"DATA\\B.TXT", "base b"},
	}
	for _, tt := range tests {
		data, err := m.Load(tt.path)
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.path, err)
		}
		if string(data) != tt.want {
			t.Errorf("Load(%q) = %q, want %q", tt.path, data, tt.want)
		}
	}

	if _, err := m.Load("data/missing.txt"); !errors.Is(err, grf.ErrNotFound) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestLoadPreferDisk(t *testing.T) {
	archive := writeArchive(t, "data.grf", grf.File{Name: "model.rsm", Data: []byte("from archive")})
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "model.rsm")
	if err := os.WriteFile(onDisk, []byte("from disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(true)
	defer m.Close()
	if err := m.AddArchive(archive); err != nil {
		t.Fatal(err)
	}

	data, err := m.Load(onDisk)
	if err != nil || string(data) != "from disk" {
		t.Errorf("disk file: %q, %v", data, err)
	}
	// Not on disk relative to the working directory, so the archive serves it.
	data, err = m.Load("model.rsm")
	if err != nil || string(data) != "from archive" {
		t.Errorf("archive file: %q, %v", data, err)
	}
}

func TestCache(t *testing.T) {
	archive := writeArchive(t, "data.grf", grf.File{Name: "data/a.txt", Data: []byte("a")})
	m := NewManager(false)
	defer m.Close()
	if err := m.AddArchive(archive); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := m.Load("data/a.txt"); err != nil {
			t.Fatal(err)
		}
	}
	if hits, misses := m.CacheStats(); hits != 2 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses; want 2, 1", hits, misses)
	}

	m.Close()
	if hits, misses := m.CacheStats(); hits != 0 || misses != 0 {
		t.Errorf("stats after Close = %d, %d", hits, misses)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("k", []byte{byte(j)})
				c.Get("k")
			}
		}()
	}
	wg.Wait()
	if hits, misses := c.Stats(); hits+misses != 800 {
		t.Errorf("counted %d lookups, want 800", hits+misses)
	}
}

func TestLoadRSM(t *testing.T) {
	archive := writeArchive(t, "data.grf",
		grf.File{Name: "data/model/bad.rsm", Data: []byte("GRSM\x01")},
		grf.File{Name: "data/town.rsw", Data: []byte("XXXX\x02\x01")},
	)
	m := NewManager(false)
	defer m.Close()
	if err := m.AddArchive(archive); err != nil {
		t.Fatal(err)
	}

	if _, err := m.LoadRSM("data/model/bad.rsm"); !errors.Is(err, formats.ErrTruncatedRSMData) {
		t.Errorf("LoadRSM = %v, want ErrTruncatedRSMData", err)
	}
	if _, err := m.LoadRSW("data/town.rsw"); !errors.Is(err, formats.ErrInvalidRSWMagic) {
		t.Errorf("LoadRSW = %v, want ErrInvalidRSWMagic", err)
	}
	if _, err := m.LoadRSM("data/model/none.rsm"); !errors.Is(err, grf.ErrNotFound) {
		t.Errorf("missing model = %v", err)
	}
}

func TestAddArchiveError(t *testing.T) {
	m := NewManager(false)
	if err := m.AddArchive(filepath.Join(t.TempDir(), "missing.grf")); err == nil {
		t.Error("expected error for missing archive")
	}
}
