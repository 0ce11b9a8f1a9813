package main

import (
	"bytes"
	"io/fs"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// statErrFs fails every Stat with err and counts the calls.
type statErrFs struct {
	afero.Fs
	err   error
	calls int
}

func (f *statErrFs) Stat(name string) (os.FileInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: f.err}
	}
	return f.Fs.Stat(name)
}

func writeSizedFile(t *testing.T, fsys afero.Fs, path string, size int) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, bytes.Repeat([]byte("A"), size), 0o644))
}

func TestQueryFileSize_Sizes(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		wantKB float64
		wantMB float64
		showKB bool
		showMB bool
	}{
		{name: "empty file", size: 0},
		{name: "just under a kilobyte", size: 1023, wantKB: 1023.0 / 1024, wantMB: 1023.0 / 1024 / 1024},
		{name: "one kilobyte", size: 1024, wantKB: 1, wantMB: 1.0 / 1024, showKB: true},
		{name: "kilobyte and a half", size: 1536, wantKB: 1.5, wantMB: 1.5 / 1024, showKB: true},
		{name: "just under a megabyte", size: 1048575, wantKB: 1048575.0 / 1024, wantMB: 1048575.0 / 1024 / 1024, showKB: true},
		{name: "one megabyte", size: 1048576, wantKB: 1024, wantMB: 1, showKB: true, showMB: true},
		{name: "two megabytes", size: 2097152, wantKB: 2048, wantMB: 2, showKB: true, showMB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeSizedFile(t, fsys, "/data/file.bin", tt.size)

			report, err := QueryFileSize(fsys, "/data/file.bin")
			require.NoError(t, err)

			assert.Equal(t, "/data/file.bin", report.Path)
			assert.Equal(t, int64(tt.size), report.SizeBytes)
			assert.InDelta(t, tt.wantKB, report.SizeKB, 1e-9)
			assert.InDelta(t, tt.wantMB, report.SizeMB, 1e-12)
			assert.Equal(t, tt.showKB, report.ShowKB())
			assert.Equal(t, tt.showMB, report.ShowMB())
		})
	}
}

func TestQueryFileSize_TrimsPath(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeSizedFile(t, fsys, "/data/file.txt", 10)

	report, err := QueryFileSize(fsys, "  /data/file.txt \t")
	require.NoError(t, err)
	assert.Equal(t, "/data/file.txt", report.Path)
	assert.Equal(t, int64(10), report.SizeBytes)
}

func TestQueryFileSize_EmptyPathSkipsFilesystem(t *testing.T) {
	for _, path := range []string{"", "   ", "\t\n"} {
		fsys := &statErrFs{Fs: afero.NewMemMapFs()}

		_, err := QueryFileSize(fsys, path)
		assert.ErrorIs(t, err, ErrNoFilename)
		assert.Zero(t, fsys.calls, "stat must not be called for %q", path)
	}
}

func TestQueryFileSize_NotFound(t *testing.T) {
	_, err := QueryFileSize(afero.NewMemMapFs(), "/missing.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrIOFailure))
}

func TestQueryFileSize_Directory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data/dir", 0o755))

	_, err := QueryFileSize(fsys, "/data/dir")
	assert.True(t, errors.Is(err, ErrNotRegularFile))
}

func TestQueryFileSize_IOFailure(t *testing.T) {
	fsys := &statErrFs{Fs: afero.NewMemMapFs(), err: fs.ErrPermission}

	_, err := QueryFileSize(fsys, "/secret.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, 1, fsys.calls)
}

func TestQueryFileSize_NoCaching(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeSizedFile(t, fsys, "/data/grow.txt", 100)

	first, err := QueryFileSize(fsys, "/data/grow.txt")
	require.NoError(t, err)

	writeSizedFile(t, fsys, "/data/grow.txt", 2048)
	second, err := QueryFileSize(fsys, "/data/grow.txt")
	require.NoError(t, err)

	assert.Equal(t, int64(100), first.SizeBytes)
	assert.Equal(t, int64(2048), second.SizeBytes)
}

func TestPrintFileSizeReport(t *testing.T) {
	tests := []struct {
		size    int64
		want    []string
		notWant []string
	}{
		{size: 512, want: []string{"Size: 512 bytes"}, notWant: []string{"KB", "MB"}},
		{size: 1536, want: []string{"Size: 1536 bytes", "Size: 1.50 KB"}, notWant: []string{"1.00 KB", "MB"}},
		{size: 1048575, want: []string{"Size: 1024.00 KB"}, notWant: []string{"MB"}},
		{size: 2097152, want: []string{"Size: 2097152 bytes", "Size: 2048.00 KB", "Size: 2.00 MB"}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		newPrinter(&buf).printFileSizeReport(NewFileSizeReport("f.bin", tt.size))
		out := buf.String()

		assert.Contains(t, out, "File: f.bin")
		for _, w := range tt.want {
			assert.Contains(t, out, w, "size %d", tt.size)
		}
		for _, nw := range tt.notWant {
			assert.NotContains(t, out, nw, "size %d", tt.size)
		}
	}
}

func TestPrintQueryError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/dir", 0o755))

	cases := []struct {
		path string
		fs   afero.Fs
		want string
	}{
		{path: " ", fs: fsys, want: "Error: No filename provided."},
		{path: "/nope.txt", fs: fsys, want: "Error: File '/nope.txt' not found."},
		{path: "/dir", fs: fsys, want: "Error: '/dir' is not a regular file."},
		{path: "/locked", fs: &statErrFs{Fs: fsys, err: fs.ErrPermission}, want: "Error reading file: stat /locked: permission denied"},
	}

	for _, c := range cases {
		_, err := QueryFileSize(c.fs, c.path)
		require.Error(t, err)

		var buf bytes.Buffer
		newPrinter(&buf).printQueryError(c.path, err)
		assert.Equal(t, c.want+"\n", buf.String())
	}
}

func TestListFileCandidates(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{"/proj/sub", "/proj/build", "/proj/.git"} {
		require.NoError(t, fsys.MkdirAll(dir, 0o755))
	}
	writeSizedFile(t, fsys, "/proj/a.txt", 1)
	writeSizedFile(t, fsys, "/proj/debug.log", 1)
	writeSizedFile(t, fsys, "/proj/.hidden", 1)
	writeSizedFile(t, fsys, "/proj/.git/config", 1)
	writeSizedFile(t, fsys, "/proj/build/out.log", 1)
	writeSizedFile(t, fsys, "/proj/sub/b.go", 1)
	require.NoError(t, afero.WriteFile(fsys, "/proj/.gitignore", []byte("*.log\n"), 0o644))

	log := zaptest.NewLogger(t)

	t.Run("defaults skip hidden and ignored", func(t *testing.T) {
		got, err := listFileCandidates(fsys, "/proj", candidateOptions{}, log)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"/proj/a.txt", "/proj/sub/b.go"}, got)
	})

	t.Run("no ignore keeps ignored files", func(t *testing.T) {
		got, err := listFileCandidates(fsys, "/proj", candidateOptions{NoIgnore: true}, log)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"/proj/a.txt", "/proj/debug.log", "/proj/build/out.log", "/proj/sub/b.go"}, got)
	})

	t.Run("hidden entries on request", func(t *testing.T) {
		got, err := listFileCandidates(fsys, "/proj", candidateOptions{ShowHidden: true, NoIgnore: true}, log)
		require.NoError(t, err)
		assert.Contains(t, got, "/proj/.hidden")
		assert.Contains(t, got, "/proj/.git/config")
		assert.Contains(t, got, "/proj/.gitignore")
		assert.NotContains(t, got, "/proj/sub", "directories are never offered")
	})
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".env"))
	assert.True(t, isHidden("dir/.cache"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
	assert.False(t, isHidden("main.go"))
}

func TestPreviewFileSize(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeSizedFile(t, fsys, "/p/x.bin", 1536)

	preview := previewFileSize(fsys, "/p/x.bin")
	assert.Equal(t, "File: /p/x.bin\nSize: 1536 bytes\nSize: 1.50 KB\n", preview)

	assert.Contains(t, previewFileSize(fsys, "/p/none"), "not found")
}
