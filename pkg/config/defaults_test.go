package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDiffConfig(t *testing.T) {
	config := DefaultDiffConfig()

	assert.Equal(t, 5, config.Lookahead)
	assert.Equal(t, 5, config.MaxMerge)
}

func TestDefaultMatchConfig(t *testing.T) {
	config := DefaultMatchConfig()

	assert.Equal(t, 0.6, config.SimilarityThreshold)
	assert.Less(t, config.SimilarityThreshold+config.SectionTypeBonus, 1.0,
		"threshold plus bonus must stay below a perfect score")
}

func TestDefaultLayoutConfig(t *testing.T) {
	config := DefaultLayoutConfig()

	assert.Less(t, config.HeaderYMax, config.FooterYMin,
		"header band must sit above the footer band")
	assert.Greater(t, config.SameLineThreshold, 0.0)
}

func TestDefaultBuildConfig(t *testing.T) {
	config := DefaultBuildConfig()

	assert.Equal(t, "pyinstaller", config.Bundler)
	assert.Len(t, config.HiddenImports, 4)
	assert.Len(t, config.ExcludedModules, 4)
}

func TestDefaultLaunchConfig(t *testing.T) {
	config := DefaultLaunchConfig()

	require.Len(t, config.Packages, 2)

	foundFitz := false
	for _, p := range config.Packages {
		if p.ImportName == "fitz" && p.PackageName == "PyMuPDF" {
			foundFitz = true
			break
		}
	}
	assert.True(t, foundFitz, "fitz must map to the PyMuPDF package")
}
