package ebookconvert_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fanvault/internal/services"
	"fanvault/internal/services/ebookconvert"
)

type fakeExecutor struct {
	cmd    services.Command
	create string
	runErr error
}

func (f *fakeExecutor) Run(_ context.Context, cmd services.Command, _ func(string)) error {
	f.cmd = cmd
	if f.create != "" {
		if err := os.WriteFile(f.create, []byte("epub"), 0o644); err != nil {
			return err
		}
	}
	return f.runErr
}

func TestConvertBuildsCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "story.epub")
	fake := &fakeExecutor{create: out}
	client, err := ebookconvert.New("ebook-convert", ebookconvert.WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	err = client.Convert(context.Background(), "/in/story.html", out, ebookconvert.BookMeta{
		Title:   "My Story",
		Authors: "alice",
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if fake.cmd.Args[0] != "/in/story.html" || fake.cmd.Args[1] != out {
		t.Errorf("args = %v, want input then output first", fake.cmd.Args)
	}
	joined := strings.Join(fake.cmd.Args, " ")
	if !strings.Contains(joined, "--title My Story") || !strings.Contains(joined, "--authors alice") {
		t.Errorf("args %q missing metadata flags", joined)
	}
}

func TestConvertMissingOutputIsFailure(t *testing.T) {
	client, err := ebookconvert.New("ebook-convert", ebookconvert.WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatal(err)
	}
	err = client.Convert(context.Background(), "/in/story.html",
		filepath.Join(t.TempDir(), "missing.epub"), ebookconvert.BookMeta{})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("err = %v, want ErrExternalTool", err)
	}
}

func TestConvertToolFailure(t *testing.T) {
	fake := &fakeExecutor{runErr: errors.New("exit status 2")}
	client, err := ebookconvert.New("ebook-convert", ebookconvert.WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}
	err = client.Convert(context.Background(), "/in/story.html", "/out/story.epub", ebookconvert.BookMeta{})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("err = %v, want ErrExternalTool", err)
	}
}
