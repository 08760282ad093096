package detection_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/twin/internal/adapters/telemetry"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports/mocks"
	"go.trai.ch/twin/internal/engine/detection"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), domain.FilePerm))
	}
	return root
}

func newDetector(t *testing.T) (*detection.Detector, *mocks.MockConfigLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	return detection.NewDetector(loader, telemetry.NewNoOpTracer()), loader
}

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantMethod  domain.DetectionMethod
		wantPattern []string
		wantRecipes []string
		wantCommand string
	}{
		{
			name:        "single signature",
			files:       map[string]string{"pnpm-lock.yaml": ""},
			wantMethod:  domain.MethodSingle,
			wantPattern: []string{"node_modules"},
			wantRecipes: []string{"pnpm"},
			wantCommand: "pnpm install --prefer-offline",
		},
		{
			name:        "merged signatures drop the command",
			files:       map[string]string{"Cargo.lock": "", "package-lock.json": ""},
			wantMethod:  domain.MethodMerged,
			wantPattern: []string{"node_modules", "target"},
			wantRecipes: []string{"npm", "rust"},
		},
		{
			name:        "signature short-circuits the ignore file",
			files:       map[string]string{"uv.lock": "", ".gitignore": "dist\n"},
			wantMethod:  domain.MethodSingle,
			wantPattern: []string{".venv"},
			wantRecipes: []string{"uv"},
			wantCommand: "uv sync",
		},
		{
			name:        "ignore file inference",
			files:       map[string]string{".gitignore": "node_modules\ndist\n__pycache__\n"},
			wantMethod:  domain.MethodGitignore,
			wantPattern: []string{"node_modules", "dist"},
		},
		{
			name:       "ignore file with only empty mappings",
			files:      map[string]string{".gitignore": "__pycache__\n.DS_Store\n"},
			wantMethod: domain.MethodNone,
		},
		{
			name:       "nothing",
			files:      map[string]string{"README.md": "hi"},
			wantMethod: domain.MethodNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newDetector(t)

			res, err := d.Detect(context.Background(), project(t, tt.files))
			require.NoError(t, err)

			assert.Equal(t, tt.wantMethod, res.Method)
			assert.Equal(t, tt.wantRecipes, res.Recipes)
			if tt.wantMethod == domain.MethodNone {
				assert.False(t, res.Found())
				return
			}
			require.True(t, res.Found())
			assert.Equal(t, tt.wantPattern, res.Patterns())
			assert.Equal(t, tt.wantCommand, res.Config.Command)
		})
	}
}

func TestDetector_Detect_MergedRecipeAndMarkers(t *testing.T) {
	d, _ := newDetector(t)

	res, err := d.Detect(context.Background(), project(t, map[string]string{"turbo.json": "", "pnpm-lock.yaml": ""}))
	require.NoError(t, err)

	assert.Equal(t, domain.MethodMerged, res.Method)
	assert.Equal(t, "turborepo", res.Config.Recipe)
	assert.Equal(t, []string{"turbo.json", "pnpm-lock.yaml"}, res.Markers)
	assert.Equal(t, []string{"node_modules", "**/node_modules", ".turbo"}, res.Patterns())
}

func TestDetector_Detect_ExplicitWins(t *testing.T) {
	d, loader := newDetector(t)
	root := project(t, map[string]string{
		domain.OverrideFileName: "cache: []\n",
		"pnpm-lock.yaml":        "",
		"Cargo.lock":            "",
	})

	loader.EXPECT().Load(filepath.Join(root, domain.OverrideFileName)).Return(domain.CacheConfig{Patterns: []string{}}, nil)

	res, err := d.Detect(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodExplicit, res.Method)
	require.True(t, res.Found())
	assert.Empty(t, res.Patterns())
	assert.Empty(t, res.Recipes)
}

func TestDetector_Detect_ExplicitRecipe(t *testing.T) {
	d, loader := newDetector(t)
	root := project(t, map[string]string{domain.OverrideFileName: "extends: rust\n"})

	loader.EXPECT().Load(gomock.Any()).Return(domain.NewCacheConfig("rust", "", "target"), nil)

	res, err := d.Detect(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, res.Recipes)
}

func TestDetector_Detect_MalformedOverrideIsFatal(t *testing.T) {
	d, loader := newDetector(t)
	root := project(t, map[string]string{
		domain.OverrideFileName: "cache: [\n",
		"pnpm-lock.yaml":        "",
	})

	loader.EXPECT().Load(gomock.Any()).Return(domain.CacheConfig{}, domain.Fail(domain.ErrConfigSyntax, zerr.New("yaml: line 1")))

	_, err := d.Detect(context.Background(), root)
	require.Error(t, err)
	assert.Equal(t, domain.KindConfigSyntax, domain.KindOf(err))
}

func TestDetector_Detect_MissingRoot(t *testing.T) {
	d, _ := newDetector(t)

	_, err := d.Detect(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDetector_DetectImplicit_SkipsOverride(t *testing.T) {
	d, _ := newDetector(t)
	root := project(t, map[string]string{
		domain.OverrideFileName: "cache: [\n",
		"yarn.lock":             "",
	})

	res, err := d.DetectImplicit(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodSingle, res.Method)
	assert.Equal(t, []string{"yarn"}, res.Recipes)
}
