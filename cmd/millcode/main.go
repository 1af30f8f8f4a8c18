// MillCode — CNC Toolpath Generator
//
// A cross-platform desktop application for generating circular pocket,
// thread mill, and peck drill G-code programs for vertical machining
// centers.
//
// Build:
//   go build -o millcode ./cmd/millcode
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o millcode.exe ./cmd/millcode
//   GOOS=darwin  GOARCH=amd64 go build -o millcode-darwin ./cmd/millcode
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/mverhaert/millcode/internal/ui"
)

func main() {
	application := app.NewWithID("com.mverhaert.millcode")
	application.Settings().SetTheme(ui.NewMillCodeTheme())

	window := application.NewWindow("MillCode — CNC Toolpath Generator")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 720))
	window.CenterOnScreen()
	window.ShowAndRun()
}
