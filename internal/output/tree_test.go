package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	root := &TreeNode{Name: "wts.Page.Settings"}
	storage := root.Add("wts.Feat.SettingsStorage", "Feature")
	storage.Add("wts.Feat.Json", "Feature")
	root.Add("wts.Feat.Theme", "")

	got := RenderTree(root, NoColorStyles())

	want := "wts.Page.Settings\n" +
		"├── wts.Feat.SettingsStorage" + strings.Repeat(" ", 12) + "Feature\n" +
		"│   └── wts.Feat.Json" + strings.Repeat(" ", 19) + "Feature\n" +
		"└── wts.Feat.Theme\n"
	assert.Equal(t, want, got)
}

func TestRenderTree_Nil(t *testing.T) {
	assert.Empty(t, RenderTree(nil, NoColorStyles()))
}
