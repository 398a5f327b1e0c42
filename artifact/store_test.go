package artifact_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/uiwait/artifact"
)

func TestStoreWritesUniqueFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "uiwait-artifacts")
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	defer os.RemoveAll(dir)

	store, err := artifact.NewStore(dir)
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}

	first, err := store.SaveScreenshot([]byte("png-a"), "wait_warn")
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	second, err := store.SaveScreenshot([]byte("png-b"), "wait_warn")
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if first == second {
		t.Fatalf("same label must still get unique paths: %s\n", first)
	}

	data, err := ioutil.ReadFile(first)
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if string(data) != "png-a" {
		t.Fatalf("artifact content mangled: %q\n", data)
	}
	if filepath.Ext(first) != ".png" {
		t.Fatalf("unexpected extension: %s\n", first)
	}
}

func TestStorePageSourceExtensionFallback(t *testing.T) {
	dir, err := ioutil.TempDir("", "uiwait-artifacts")
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	defer os.RemoveAll(dir)

	store, err := artifact.NewStore(dir)
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}

	path, err := store.SavePageSource("<html/>", "", "failure")
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if filepath.Ext(path) != ".txt" {
		t.Fatalf("empty extension should fall back to txt: %s\n", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "failure_") {
		t.Fatalf("label missing from file name: %s\n", path)
	}
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "uiwait-artifacts")
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	defer os.RemoveAll(dir)

	nested := filepath.Join(dir, "run", "artifacts")
	store, err := artifact.NewStore(nested)
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if store.Dir() != nested {
		t.Fatalf("unexpected dir: %s\n", store.Dir())
	}
	if _, err := os.Stat(nested); err != nil {
		t.Fatalf("store dir not created: %s\n", err)
	}
}
