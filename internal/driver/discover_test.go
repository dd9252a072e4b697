package driver

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.php", "sub/b.php", "sub/deep/c.php", "vendor/lib/d.php", "notes.txt"} {
		writeFile(t, dir, name, "<?php\n")
	}

	got, err := Discover(dir, nil, DefaultExclude)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.php"),
		filepath.Join(dir, "sub/b.php"),
		filepath.Join(dir, "sub/deep/c.php"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Discover mismatch (-want +got):\n%s", diff)
	}

	got, err = Discover(dir, []string{"sub/*.php"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "sub/b.php")}, got); diff != "" {
		t.Fatalf("include glob mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "script.inc", "<?php\n")
	got, err := Discover(path, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != path {
		t.Fatalf("Discover(file) = %v", got)
	}
}

func TestDiscoverErrors(t *testing.T) {
	if _, err := Discover(t.TempDir(), []string{"[a"}, nil); err == nil {
		t.Fatalf("invalid glob must fail")
	}
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), nil, nil); err == nil {
		t.Fatalf("missing root must fail")
	}
}

func TestDiscoverAllDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.php", "<?php\n")
	got, err := DiscoverAll([]string{a, dir}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{a}, got); diff != "" {
		t.Fatalf("DiscoverAll mismatch (-want +got):\n%s", diff)
	}
}
