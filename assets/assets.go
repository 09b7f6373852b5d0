package assets

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var iconSVG []byte

// AppIcon is the window and tray icon of the desktop client.
func AppIcon() fyne.Resource {
	return fyne.NewStaticResource("icon.svg", iconSVG)
}
