package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/model"
)

func TestShadeValues(t *testing.T) {
	shades, err := ShadeValues("#3f76ff")
	require.NoError(t, err)
	require.Len(t, shades, len(Shades))

	assert.Equal(t, "63, 118, 255", shades[100])
	assert.Equal(t, "236, 241, 255", shades[10])
	assert.Equal(t, "13, 24, 51", shades[900])
}

func TestShadeValues_Invalid(t *testing.T) {
	_, err := ShadeValues("not-a-color")
	assert.ErrorIs(t, err, model.ErrInvalidColor)
}

func TestCustomVariableName(t *testing.T) {
	assert.Equal(t, "--color-sidebar-text-500", CustomVariableName("sidebar-text", 500))
}

func TestApplyAndUnsetCustomVariables(t *testing.T) {
	root := document.NewRoot()
	root.SetColorScheme("light")

	draft := model.UserTheme{Palette: model.EmptyPalette}.CustomDraft()
	require.NoError(t, ApplyCustomVariables(root, draft))

	vars := CustomVariables(root)
	assert.Len(t, vars, 5*len(Shades))

	v, ok := root.Property("--color-primary-100")
	require.True(t, ok)
	assert.Equal(t, "63, 118, 255", v)

	UnsetCustomVariables(root)
	assert.Empty(t, CustomVariables(root))
	assert.Equal(t, "light", root.ColorScheme(), "unrelated properties survive")
}

func TestApplyCustomVariables_InvalidLeavesRootUntouched(t *testing.T) {
	root := document.NewRoot()

	draft := model.UserTheme{Palette: model.EmptyPalette}.CustomDraft()
	draft.SidebarText = "bogus"

	err := ApplyCustomVariables(root, draft)
	assert.ErrorIs(t, err, model.ErrInvalidColor)
	assert.Empty(t, root.Properties())
}
