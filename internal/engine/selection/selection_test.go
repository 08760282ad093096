package selection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/twin/internal/adapters/telemetry"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports/mocks"
	"go.trai.ch/twin/internal/engine/selection"
	"go.uber.org/mock/gomock"
)

var (
	mainWC    = domain.WorkingCopy{Path: "/repo", Branch: "main", Primary: true}
	masterWC  = domain.WorkingCopy{Path: "/repo-master", Branch: "master"}
	featureWC = domain.WorkingCopy{Path: "/repo-feature", Branch: "feature/x"}
	fixWC     = domain.WorkingCopy{Path: "/repo-fix", Branch: "fix"}
	newWC     = domain.WorkingCopy{Path: "/repo-new", Branch: "new"}
)

type detectorFunc func(ctx context.Context, root string) (domain.DetectionResult, error)

func (f detectorFunc) Detect(ctx context.Context, root string) (domain.DetectionResult, error) {
	return f(ctx, root)
}

// nodeModules detects the same configuration everywhere.
var nodeModules = detectorFunc(func(context.Context, string) (domain.DetectionResult, error) {
	cfg := domain.NewCacheConfig("npm", "", "node_modules")
	return domain.DetectionResult{Method: domain.MethodSingle, Config: &cfg}, nil
})

func populatedAt(verifier *mocks.MockCacheVerifier, filled ...string) {
	set := make(map[string]bool, len(filled))
	for _, p := range filled {
		set[p] = true
	}
	verifier.EXPECT().Populated(gomock.Any(), []string{"node_modules"}).DoAndReturn(
		func(root string, _ []string) (bool, error) { return set[root], nil },
	).AnyTimes()
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		copies      []domain.WorkingCopy
		current     domain.WorkingCopy
		populated   []string
		want        domain.WorkingCopy
		wantWarning bool
	}{
		{
			name:      "primary branch with cache",
			copies:    []domain.WorkingCopy{mainWC, masterWC, featureWC, newWC},
			current:   featureWC,
			populated: []string{"/repo", "/repo-master", "/repo-feature"},
			want:      mainWC,
		},
		{
			name:      "legacy primary when primary is empty",
			copies:    []domain.WorkingCopy{mainWC, featureWC, masterWC, newWC},
			current:   mainWC,
			populated: []string{"/repo-feature", "/repo-master"},
			want:      masterWC,
		},
		{
			name:        "any populated copy in listing order",
			copies:      []domain.WorkingCopy{mainWC, featureWC, fixWC, newWC},
			current:     mainWC,
			populated:   []string{"/repo-fix", "/repo-feature"},
			want:        featureWC,
			wantWarning: true,
		},
		{
			name:        "current copy when nothing is populated",
			copies:      []domain.WorkingCopy{mainWC, featureWC, fixWC, newWC},
			current:     fixWC,
			want:        fixWC,
			wantWarning: true,
		},
		{
			name:        "first listed copy as last resort",
			copies:      []domain.WorkingCopy{featureWC, mainWC, newWC},
			current:     newWC,
			want:        featureWC,
			wantWarning: true,
		},
		{
			name:        "target is never a candidate",
			copies:      []domain.WorkingCopy{newWC, fixWC},
			current:     newWC,
			populated:   []string{"/repo-new"},
			want:        fixWC,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			verifier := mocks.NewMockCacheVerifier(ctrl)
			populatedAt(verifier, tt.populated...)

			s := selection.NewSelector(nodeModules, verifier, mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

			sel, err := s.Select(context.Background(), tt.copies, tt.current, newWC.Path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.Chosen)
			if tt.wantWarning {
				assert.Contains(t, sel.Warning, tt.want.Branch)
			} else {
				assert.Empty(t, sel.Warning)
			}
		})
	}
}

func TestSelect_ChecksEachCopyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockCacheVerifier(ctrl)
	verifier.EXPECT().Populated("/repo", gomock.Any()).Return(false, nil).Times(1)
	verifier.EXPECT().Populated("/repo-feature", gomock.Any()).Return(false, nil).Times(1)

	s := selection.NewSelector(nodeModules, verifier, mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

	sel, err := s.Select(context.Background(), []domain.WorkingCopy{mainWC, featureWC}, mainWC, newWC.Path)
	require.NoError(t, err)
	assert.Equal(t, mainWC, sel.Chosen)
	assert.Contains(t, sel.Warning, "current working copy")
}

func TestSelect_DetectionErrorCountsAsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockCacheVerifier(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	detector := detectorFunc(func(_ context.Context, root string) (domain.DetectionResult, error) {
		if root == mainWC.Path {
			return domain.DetectionResult{}, domain.Fail(domain.ErrConfigSyntax, errors.New("yaml: line 2"))
		}
		cfg := domain.NewCacheConfig("", "", "node_modules")
		return domain.DetectionResult{Method: domain.MethodGitignore, Config: &cfg}, nil
	})
	verifier.EXPECT().Populated(featureWC.Path, gomock.Any()).Return(true, nil)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, mainWC.Path)
	})

	s := selection.NewSelector(detector, verifier, logger, telemetry.NewNoOpTracer())

	sel, err := s.Select(context.Background(), []domain.WorkingCopy{mainWC, featureWC}, mainWC, newWC.Path)
	require.NoError(t, err)
	assert.Equal(t, featureWC, sel.Chosen)
	assert.NotEmpty(t, sel.Warning)
}

func TestSelect_NoConfigurationIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	none := detectorFunc(func(context.Context, string) (domain.DetectionResult, error) {
		return domain.DetectionResult{Method: domain.MethodNone}, nil
	})

	s := selection.NewSelector(none, mocks.NewMockCacheVerifier(ctrl), mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

	sel, err := s.Select(context.Background(), []domain.WorkingCopy{mainWC}, newWC, newWC.Path)
	require.NoError(t, err)
	assert.Equal(t, mainWC, sel.Chosen)
	assert.NotEmpty(t, sel.Warning)
}

func TestSelect_NoCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := selection.NewSelector(nodeModules, mocks.NewMockCacheVerifier(ctrl), mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

	_, err := s.Select(context.Background(), []domain.WorkingCopy{newWC}, newWC, newWC.Path)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
