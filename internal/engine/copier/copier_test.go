package copier_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/twin/internal/adapters/fs"
	"go.trai.ch/twin/internal/adapters/telemetry"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports/mocks"
	"go.trai.ch/twin/internal/engine/copier"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	copier   *copier.Copier
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	c := copier.NewCopier(
		fs.NewResolver(fs.NewWalker()),
		fs.NewLinker(),
		executor,
		logger,
		telemetry.NewNoOpTracer(),
	)
	return &fixture{copier: c, executor: executor, logger: logger}
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCopyArtifacts_NestedMatchesCopyOnlyTheParent(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"a/top.txt":   "top",
		"a/b/mid.txt": "mid",
		"a/b/c/deep":  "deep",
	})

	res, err := f.copier.CopyArtifacts(context.Background(), src, dst, []string{"a", "a/b", "a/b/c"}, domain.CopyOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, res.Copied)
	assert.Equal(t, []string{"a"}, res.Attempted)
	assert.Empty(t, res.Failed)
	assert.Equal(t, "top", readFile(t, filepath.Join(dst, "a", "top.txt")))
	assert.Equal(t, "mid", readFile(t, filepath.Join(dst, "a", "b", "mid.txt")))
	assert.Equal(t, "deep", readFile(t, filepath.Join(dst, "a", "b", "c", "deep")))
}

func TestCopyArtifacts_NeverOverwrites(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"node_modules/pkg/index.js": "source",
		"dist/app.js":               "built",
	})
	writeFiles(t, dst, map[string]string{"node_modules/pkg/index.js": "local"})

	res, err := f.copier.CopyArtifacts(context.Background(), src, dst, []string{"node_modules", "dist"}, domain.CopyOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"dist"}, res.Copied)
	assert.Equal(t, "local", readFile(t, filepath.Join(dst, "node_modules", "pkg", "index.js")))
	assert.Equal(t, "built", readFile(t, filepath.Join(dst, "dist", "app.js")))
}

func TestCopyArtifacts_SkipsMissingSources(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"target/debug/app": "bin"})

	res, err := f.copier.CopyArtifacts(context.Background(), src, dst, []string{"target", ".venv", "**/node_modules"}, domain.CopyOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"target"}, res.Attempted)
	assert.Equal(t, []string{"target"}, res.Copied)
}

func TestCopyArtifacts_GlobAcrossPackages(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"node_modules/root/x":                "1",
		"packages/a/node_modules/dep/x":      "2",
		"packages/b/node_modules/dep/x":      "3",
		"packages/b/src/index.ts":            "src",
		"node_modules/root/node_modules/z/x": "4",
	})

	res, err := f.copier.CopyArtifacts(context.Background(), src, dst, []string{"node_modules", "**/node_modules"}, domain.CopyOptions{Jobs: 2})
	require.NoError(t, err)

	want := []string{
		"node_modules",
		filepath.Join("packages", "a", "node_modules"),
		filepath.Join("packages", "b", "node_modules"),
	}
	assert.Equal(t, want, res.Copied)
	assert.NoFileExists(t, filepath.Join(dst, "packages", "b", "src", "index.ts"))
	assert.Equal(t, "4", readFile(t, filepath.Join(dst, "node_modules", "root", "node_modules", "z", "x")))
}

func TestCopyArtifacts_ProgressIsOrdered(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"a/x": "", "b/x": "", "c/x": ""})

	type call struct {
		index, total int
		path         string
	}
	var (
		mu    sync.Mutex
		calls []call
	)
	opts := domain.CopyOptions{
		Jobs: 3,
		Progress: func(i, total int, path string) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, call{i, total, path})
		},
	}

	_, err := f.copier.CopyArtifacts(context.Background(), src, dst, []string{"c", "a", "b"}, opts)
	require.NoError(t, err)

	assert.Equal(t, []call{{0, 3, "a"}, {1, 3, "b"}, {2, 3, "c"}, {3, 3, ""}}, calls)
}

func TestCopyArtifacts_WarnsOnRejectedPattern(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "../outside")
	})

	res, err := f.copier.CopyArtifacts(context.Background(), t.TempDir(), t.TempDir(), []string{"../outside"}, domain.CopyOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Attempted)
	assert.Empty(t, res.Copied)
}

func TestCopyArtifacts_ItemFailureDoesNotAbortBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	linker := mocks.NewMockLinker(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	c := copier.NewCopier(fs.NewResolver(fs.NewWalker()), linker, mocks.NewMockExecutor(ctrl), logger, telemetry.NewNoOpTracer())

	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"a/x": "", "b/x": "", "c/x": ""})

	linker.EXPECT().Hardlink(filepath.Join(src, "a"), filepath.Join(dst, "a")).Return(nil)
	linker.EXPECT().Hardlink(filepath.Join(src, "b"), filepath.Join(dst, "b")).Return(os.ErrPermission)
	linker.EXPECT().Hardlink(filepath.Join(src, "c"), filepath.Join(dst, "c")).Return(nil)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "failed to copy b"), msg)
	})

	res, err := c.CopyArtifacts(context.Background(), src, dst, []string{"a", "b", "c"}, domain.CopyOptions{Jobs: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, res.Attempted)
	assert.Equal(t, []string{"a", "c"}, res.Copied)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "b", res.Failed[0].Path)
	assert.ErrorIs(t, res.Failed[0].Err, domain.ErrCopyFailed)
	assert.ErrorIs(t, res.Failed[0].Err, os.ErrPermission)
}

func TestCopyArtifacts_ReflinkFallsBackToHardlink(t *testing.T) {
	ctrl := gomock.NewController(t)
	linker := mocks.NewMockLinker(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	c := copier.NewCopier(fs.NewResolver(fs.NewWalker()), linker, mocks.NewMockExecutor(ctrl), logger, telemetry.NewNoOpTracer())

	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"a/x": "", "b/x": ""})

	linker.EXPECT().ProbeReflink(dst).Return(true).Times(1)
	linker.EXPECT().Reflink(filepath.Join(src, "a"), filepath.Join(dst, "a")).Return(errors.New("operation not supported"))
	linker.EXPECT().Hardlink(filepath.Join(src, "a"), filepath.Join(dst, "a")).Return(nil)
	linker.EXPECT().Reflink(filepath.Join(src, "b"), filepath.Join(dst, "b")).Return(nil)

	res, err := c.CopyArtifacts(context.Background(), src, dst, []string{"a", "b"}, domain.CopyOptions{Reflink: true, Jobs: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Copied)
}

func TestCopyArtifacts_ReflinkProbeFailsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	linker := mocks.NewMockLinker(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	c := copier.NewCopier(fs.NewResolver(fs.NewWalker()), linker, mocks.NewMockExecutor(ctrl), logger, telemetry.NewNoOpTracer())

	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"a/x": "", "b/x": ""})

	linker.EXPECT().ProbeReflink(dst).Return(false).Times(1)
	logger.EXPECT().Warn(gomock.Any()).Times(1)
	for _, item := range []string{"a", "b"} {
		// The mocked linker creates nothing, so both runs link every item.
		linker.EXPECT().Hardlink(filepath.Join(src, item), filepath.Join(dst, item)).Return(nil).Times(2)
	}

	for range 2 {
		res, err := c.CopyArtifacts(context.Background(), src, dst, []string{"a", "b"}, domain.CopyOptions{Reflink: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, res.Copied)
	}
}

func TestRestore_ReconcilesAfterCopy(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"node_modules/x": "1"})

	f.executor.EXPECT().Run(gomock.Any(), dst, "pnpm install", nil, nil).DoAndReturn(
		func(_ context.Context, dir, _ string, _, _ io.Writer) error {
			assert.FileExists(t, filepath.Join(dir, "node_modules", "x"))
			return nil
		})

	cfg := domain.NewCacheConfig("pnpm", "pnpm install", "node_modules")
	res, err := f.copier.Restore(context.Background(), src, dst, cfg, domain.CopyOptions{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules"}, res.Copied)
}

func TestRestore_ReconcileFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"node_modules/x": "1"})

	f.executor.EXPECT().Run(gomock.Any(), dst, "npm install", nil, nil).Return(errors.New("exit status 1"))

	cfg := domain.NewCacheConfig("npm", "npm install", "node_modules")
	res, err := f.copier.Restore(context.Background(), src, dst, cfg, domain.CopyOptions{}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindReconcileFailed, domain.KindOf(err))
	assert.Equal(t, []string{"node_modules"}, res.Copied)
}

func TestRestore_NoCommandSkipsReconcile(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()

	_, err := f.copier.Restore(context.Background(), src, dst, domain.NewCacheConfig("rust", "", "target"), domain.CopyOptions{}, nil, nil)
	require.NoError(t, err)
}

func TestRestore_ReportsCopyBeforeReconcile(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"vendor/bundle/x": "1"})

	var events []string
	f.executor.EXPECT().Run(gomock.Any(), dst, "bundle install", nil, nil).DoAndReturn(
		func(_ context.Context, _, _ string, _, _ io.Writer) error {
			events = append(events, "run")
			return nil
		})

	opts := domain.CopyOptions{
		OnCopy: func(res domain.CopyResult) {
			events = append(events, "copied "+strings.Join(res.Copied, ","))
		},
		OnReconcile: func(dir, command string) {
			assert.Equal(t, dst, dir)
			events = append(events, "reconcile "+command)
		},
	}
	cfg := domain.NewCacheConfig("bundler", "bundle install", "vendor/bundle")
	_, err := f.copier.Restore(context.Background(), src, dst, cfg, opts, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"copied vendor/bundle", "reconcile bundle install", "run"}, events)
}

func TestRestore_NoCommandSkipsReconcileHook(t *testing.T) {
	f := newFixture(t)
	src, dst := t.TempDir(), t.TempDir()

	copied := false
	opts := domain.CopyOptions{
		OnCopy:      func(domain.CopyResult) { copied = true },
		OnReconcile: func(string, string) { t.Fatal("no reconciliation expected") },
	}
	_, err := f.copier.Restore(context.Background(), src, dst, domain.NewCacheConfig("rust", "", "target"), opts, nil, nil)
	require.NoError(t, err)
	assert.True(t, copied)
}
