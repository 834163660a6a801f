package fileutil

import (
	"bytes"
	"os"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	txt := []byte("hello world")
	p, err := WriteTempFile(txt)
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(p)

	if !Exist(p) {
		t.Fatalf("%q expected to exist", p)
	}

	d, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(txt, d) {
		t.Fatalf("expected %q, got %q", string(txt), string(d))
	}
}

func TestCopyAppend(t *testing.T) {
	p1, err := WriteTempFile([]byte("first pass\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(p1)

	dst := GetTempFilePath()
	defer os.RemoveAll(dst)

	if err = Copy(p1, dst); err != nil {
		t.Fatal(err)
	}
	if err = CopyAppend(p1, dst); err != nil {
		t.Fatal(err)
	}

	d, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "first pass\nfirst pass\n" {
		t.Fatalf("unexpected contents %q", string(d))
	}
}
