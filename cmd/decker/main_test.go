package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	cfgPath = ""
	themeFlag = ""
	verbose = false
	noHistory = false
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DECKER_THEME", "")
	t.Setenv("DECKER_NO_HISTORY", "")
	t.Setenv("DECKER_DEBUG", "")

	t.Run("defaults when nothing set", func(t *testing.T) {
		resetFlags()
		c, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "auto", c.Theme)
		assert.True(t, c.History.Enabled)
	})

	t.Run("theme flag wins", func(t *testing.T) {
		resetFlags()
		themeFlag = "light"
		c, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "light", c.Theme)
	})

	t.Run("no-history flag disables history", func(t *testing.T) {
		resetFlags()
		noHistory = true
		c, err := loadConfig()
		require.NoError(t, err)
		assert.False(t, c.History.Enabled)
	})

	t.Run("verbose flag turns on debug logging", func(t *testing.T) {
		resetFlags()
		verbose = true
		c, err := loadConfig()
		require.NoError(t, err)
		assert.True(t, c.Logging.DebugMode)
	})

	t.Run("invalid theme flag fails validation", func(t *testing.T) {
		resetFlags()
		themeFlag = "sepia"
		_, err := loadConfig()
		assert.Error(t, err)
	})
}

func TestCountCodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"none", "just prose", 0},
		{"one backtick block", "```go\ncode\n```", 1},
		{"two blocks", "```\na\n```\n\ntext\n\n~~~\nb\n~~~", 2},
		{"unclosed counts once", "```\ncode", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countCodeBlocks(tt.body))
		})
	}
}
