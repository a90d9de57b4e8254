package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/pages"
)

func openShortcuts(t *testing.T, utc *UITestContext) {
	t.Helper()
	utc.SignIn()
	require.NoError(t, utc.Settings.Open())
	require.NoError(t, utc.Settings.OpenShortcutsTab())
	utc.Screenshot("shortcuts_tab")
}

func TestEnableKeyboardShortcuts(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	openShortcuts(t, utc)

	require.NoError(t, utc.Settings.EnableShortcuts())
	enabled, err := utc.Settings.ShortcutsEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, utc.Settings.VerifyShortcutsActiveMessage())

	// Enabling again is a no-op, not a toggle-off.
	require.NoError(t, utc.Settings.EnableShortcuts())
	enabled, err = utc.Settings.ShortcutsEnabled()
	require.NoError(t, err)
	assert.True(t, enabled, "re-enabling must not flip the switch off")
}

func TestShortcutListRenders(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	openShortcuts(t, utc)
	require.NoError(t, utc.Settings.ExpandNavigation())

	for _, sc := range pages.Shortcuts {
		listed, err := utc.Settings.IsShortcutListed(sc.Label)
		require.NoError(t, err)
		assert.Truef(t, listed, "shortcut %q should be listed", sc.Label)
	}
}

func TestShortcutNavigation(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	openShortcuts(t, utc)
	require.NoError(t, utc.Settings.EnableShortcuts())

	for _, sc := range pages.Shortcuts {
		sc := sc
		t.Run(sc.Label, func(t *testing.T) {
			if err := utc.Settings.PressAndVerify(sc); err != nil {
				utc.Screenshot("shortcut_failed_" + sc.Key)
				t.Fatalf("Alt+%s did not navigate to %s: %v", sc.Key, sc.Path, err)
			}
			utc.Log("Alt+%s -> %s", sc.Key, sc.Path)
		})
	}
}
