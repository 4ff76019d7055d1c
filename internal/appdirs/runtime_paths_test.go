package appdirs

import (
	"path/filepath"
	"testing"
)

func TestRuntimePathDerivations(t *testing.T) {
	paths := Paths{
		OutputDir: filepath.Join("var", "videoflow", "output"),
		CacheDir:  filepath.Join("var", "videoflow", "cache"),
	}

	if got, want := ProjectRootFor(paths), filepath.Join("var", "videoflow", "output", "projects"); got != want {
		t.Fatalf("ProjectRootFor() = %q, want %q", got, want)
	}

	if got, want := ProjectDirFor(paths, "prj_123"), filepath.Join("var", "videoflow", "output", "projects", "prj_123"); got != want {
		t.Fatalf("ProjectDirFor() = %q, want %q", got, want)
	}

	if got, want := UploadRootFor(paths), filepath.Join("var", "videoflow", "output", "uploads"); got != want {
		t.Fatalf("UploadRootFor() = %q, want %q", got, want)
	}

	if got, want := DBPathFor(paths), filepath.Join("var", "videoflow", "cache", "videoflow.db"); got != want {
		t.Fatalf("DBPathFor() = %q, want %q", got, want)
	}
}

func TestRuntimePathDerivationsWithFallbacks(t *testing.T) {
	paths := Paths{}

	if got, want := ProjectRootFor(paths), "projects"; got != want {
		t.Fatalf("ProjectRootFor() with empty output dir = %q, want %q", got, want)
	}

	if got, want := UploadRootFor(paths), "uploads"; got != want {
		t.Fatalf("UploadRootFor() with empty output dir = %q, want %q", got, want)
	}

	if got, want := DBPathFor(paths), filepath.Join("cache", "videoflow.db"); got != want {
		t.Fatalf("DBPathFor() with empty cache dir = %q, want %q", got, want)
	}
}
