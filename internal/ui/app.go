package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/mverhaert/millcode/internal/ai"
	"github.com/mverhaert/millcode/internal/export"
	"github.com/mverhaert/millcode/internal/gcode"
	holeimporter "github.com/mverhaert/millcode/internal/importer"
	"github.com/mverhaert/millcode/internal/model"
	"github.com/mverhaert/millcode/internal/project"
	"github.com/mverhaert/millcode/internal/ui/widgets"
)

const maxRecentJobs = 10

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	job     model.Job
	config  model.AppConfig
	library model.Library
	presets model.PresetStore
	history *History
	tabs    *container.AppTabs

	// UI references for dynamic updates
	opsContainer     *fyne.Container
	previewContainer *fyne.Container
	presetContainer  *fyne.Container
	libraryContainer *fyne.Container
	programEntry     *widget.Entry
	profileLabel     *widget.Label
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}

	presets := model.NewPresetStore()
	if path, err := project.DefaultPresetsPath(); err == nil {
		if loaded, err := project.LoadPresets(path); err == nil {
			presets = loaded
		}
	}

	job := model.NewJob()
	job.Profile = config.DefaultProfile

	return &App{
		window:  window,
		job:     job,
		config:  config,
		library: model.DefaultLibrary(),
		presets: presets,
		history: NewHistory(),
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Job", func() {
			a.job = model.NewJob()
			a.job.Profile = a.config.DefaultProfile
			a.history.Clear()
			a.refreshOperationsList()
			a.clearProgram()
		}),
		fyne.NewMenuItem("Open Job...", func() {
			a.loadJob()
		}),
		fyne.NewMenuItem("Save Job...", func() {
			a.saveJob()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Holes from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Holes from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItem("Import Features from DXF...", func() {
			a.importDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Program...", func() {
			a.exportProgram()
		}),
		fyne.NewMenuItem("Export Setup Sheet PDF...", func() {
			a.exportSetupSheet()
		}),
		fyne.NewMenuItem("Export Tool Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Operations", func() {
			a.pushHistory("clear operations")
			a.job.Operations = nil
			a.refreshOperationsList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Generate Program", func() {
			a.generateProgram()
			a.tabs.SelectIndex(1) // Switch to Program tab
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	mainMenu := fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		helpMenu,
	)
	a.window.SetMainMenu(mainMenu)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About MillCode",
		"MillCode — CNC Toolpath Generator\n\n"+
			"A cross-platform desktop application for generating\n"+
			"circular pocket, thread mill, and peck drill G-code\n"+
			"programs for vertical machining centers.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	opsTab := container.NewTabItem("Operations", a.buildOperationsPanel())
	programTab := container.NewTabItem("Program", a.buildProgramPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsPanel())
	aiTab := container.NewTabItem("AI Assist", a.buildAIPanel())
	libraryTab := container.NewTabItem("Tool Library", a.buildLibraryPanel())

	a.tabs = container.NewAppTabs(opsTab, programTab, settingsTab, aiTab, libraryTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Operations Panel ──────────────────────────────────────

func (a *App) buildOperationsPanel() fyne.CanvasObject {
	a.opsContainer = container.NewVBox()
	a.refreshOperationsList()

	pocketBtn := widget.NewButtonWithIcon("Add Pocket", theme.ContentAddIcon(), func() {
		a.showAddPocketDialog()
	})
	threadBtn := widget.NewButtonWithIcon("Add Thread Mill", theme.ContentAddIcon(), func() {
		a.showAddThreadDialog()
	})
	drillBtn := widget.NewButtonWithIcon("Add Peck Drill", theme.ContentAddIcon(), func() {
		a.showAddDrillDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Machining Operations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			pocketBtn,
			threadBtn,
			drillBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.opsContainer),
	)
}

func (a *App) refreshOperationsList() {
	a.opsContainer.RemoveAll()

	if len(a.job.Operations) == 0 {
		a.opsContainer.Add(widget.NewLabel("No operations yet. Add a pocket, thread mill, or peck drill to begin."))
		a.opsContainer.Refresh()
		return
	}

	header := container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Operation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Tool", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Dia (in)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("RPM", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Feed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.opsContainer.Add(header)
	a.opsContainer.Add(widget.NewSeparator())

	for i := range a.job.Operations {
		idx := i // capture
		op := a.job.Operations[idx]
		row := container.NewGridWithColumns(8,
			widget.NewLabel(op.Label),
			widget.NewLabel(op.Kind.String()),
			widget.NewLabel(fmt.Sprintf("T%d", op.ToolNumber())),
			widget.NewLabel(fmt.Sprintf("%.4f", op.ToolDiameter())),
			widget.NewLabel(fmt.Sprintf("%d", op.SpindleSpeed())),
			widget.NewLabel(fmt.Sprintf("%.1f", op.FeedRate())),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditOperationDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.pushHistory("delete " + op.Label)
				a.job.Operations = append(a.job.Operations[:idx], a.job.Operations[idx+1:]...)
				a.refreshOperationsList()
			}),
		)
		a.opsContainer.Add(row)
	}
	a.opsContainer.Refresh()
}

func (a *App) showEditOperationDialog(idx int) {
	op := a.job.Operations[idx]
	switch op.Kind {
	case model.KindPocket:
		a.showPocketDialog("Edit Pocket", "Save", op.Label, *op.Pocket, func(label string, p model.PocketParams) {
			a.pushHistory("edit " + label)
			a.job.Operations[idx].Label = label
			a.job.Operations[idx].Pocket = &p
			a.refreshOperationsList()
		})
	case model.KindThreadMill:
		a.showThreadDialog("Edit Thread Mill", "Save", op.Label, *op.Thread, func(label string, p model.ThreadMillParams) {
			a.pushHistory("edit " + label)
			a.job.Operations[idx].Label = label
			a.job.Operations[idx].Thread = &p
			a.refreshOperationsList()
		})
	case model.KindPeckDrill:
		a.showDrillDialog("Edit Peck Drill", "Save", op.Label, *op.Drill, func(label string, p model.PeckDrillParams) {
			a.pushHistory("edit " + label)
			a.job.Operations[idx].Label = label
			a.job.Operations[idx].Drill = &p
			a.refreshOperationsList()
		})
	}
}

// ─── Operation Dialogs ─────────────────────────────────────

func (a *App) showAddPocketDialog() {
	params := model.DefaultPocketParams()
	a.config.ApplyToPocket(&params)
	label := fmt.Sprintf("Pocket %d", len(a.job.Operations)+1)
	a.showPocketDialog("Add Circular Pocket", "Add", label, params, func(label string, p model.PocketParams) {
		a.pushHistory("add " + label)
		a.job.Operations = append(a.job.Operations, model.NewPocketOperation(label, p))
		a.refreshOperationsList()
	})
}

func (a *App) showPocketDialog(title, confirm, label string, params model.PocketParams, commit func(string, model.PocketParams)) {
	labelEntry := widget.NewEntry()
	labelEntry.SetText(label)

	toolDia := floatField(params.ToolDiameter)
	pocketDia := floatField(params.PocketDiameter)
	totalDepth := floatField(params.TotalDepth)
	depthPerPass := floatField(params.DepthPerPass)
	stepover := floatField(params.Stepover)
	spindle := intField(params.SpindleSpeed)
	feed := floatField(params.FeedRate)
	safeZ := floatField(params.SafeZ)
	toolNum := intField(params.ToolNumber)

	dirSelect := widget.NewSelect([]string{"Climb", "Conventional"}, nil)
	dirSelect.SetSelected(params.Direction.String())

	toolSelect := a.buildToolSelector(model.ToolEndMill, func(t model.Tool) {
		toolDia.SetText(fmt.Sprintf("%.4f", t.Diameter))
		toolNum.SetText(fmt.Sprintf("%d", t.ToolNumber))
		feed.SetText(fmt.Sprintf("%.1f", t.FeedRate))
		spindle.SetText(fmt.Sprintf("%d", t.SpindleSpeed))
	})

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Library Tool", toolSelect),
			widget.NewFormItem("Tool Diameter (in)", toolDia),
			widget.NewFormItem("Pocket Diameter (in)", pocketDia),
			widget.NewFormItem("Total Depth (in)", totalDepth),
			widget.NewFormItem("Depth per Pass (in)", depthPerPass),
			widget.NewFormItem("Stepover (in)", stepover),
			widget.NewFormItem("Direction", dirSelect),
			widget.NewFormItem("Spindle Speed (RPM)", spindle),
			widget.NewFormItem("Feed Rate (in/min)", feed),
			widget.NewFormItem("Safe Z (in)", safeZ),
			widget.NewFormItem("Tool Number", toolNum),
		},
		func(ok bool) {
			if !ok {
				return
			}
			p := params
			p.ToolDiameter, _ = strconv.ParseFloat(toolDia.Text, 64)
			p.PocketDiameter, _ = strconv.ParseFloat(pocketDia.Text, 64)
			p.TotalDepth, _ = strconv.ParseFloat(totalDepth.Text, 64)
			p.DepthPerPass, _ = strconv.ParseFloat(depthPerPass.Text, 64)
			p.Stepover, _ = strconv.ParseFloat(stepover.Text, 64)
			p.SpindleSpeed, _ = strconv.Atoi(spindle.Text)
			p.FeedRate, _ = strconv.ParseFloat(feed.Text, 64)
			p.SafeZ, _ = strconv.ParseFloat(safeZ.Text, 64)
			p.ToolNumber, _ = strconv.Atoi(toolNum.Text)
			if dirSelect.Selected == "Conventional" {
				p.Direction = model.Conventional
			} else {
				p.Direction = model.Climb
			}
			if !a.reportFieldErrors(p.Validate()) {
				return
			}
			commit(labelEntry.Text, p)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 560))
	form.Show()
}

func (a *App) showAddThreadDialog() {
	params := model.DefaultThreadMillParams()
	a.config.ApplyToThread(&params)
	label := fmt.Sprintf("Thread %d", len(a.job.Operations)+1)
	a.showThreadDialog("Add Thread Mill", "Add", label, params, func(label string, p model.ThreadMillParams) {
		a.pushHistory("add " + label)
		a.job.Operations = append(a.job.Operations, model.NewThreadMillOperation(label, p))
		a.refreshOperationsList()
	})
}

func (a *App) showThreadDialog(title, confirm, label string, params model.ThreadMillParams, commit func(string, model.ThreadMillParams)) {
	labelEntry := widget.NewEntry()
	labelEntry.SetText(label)

	toolDia := floatField(params.ToolDiameter)
	majorDia := floatField(params.MajorDiameter)
	minorDia := floatField(params.MinorDiameter)
	tpi := floatField(params.TPI)
	threadDepth := floatField(params.ThreadDepth)
	passes := intField(params.Passes)
	spindle := intField(params.SpindleSpeed)
	feed := floatField(params.FeedRate)
	safeZ := floatField(params.SafeZ)
	toolNum := intField(params.ToolNumber)

	handSelect := widget.NewSelect([]string{"Right Hand", "Left Hand"}, nil)
	handSelect.SetSelected(params.Hand.String())

	toolSelect := a.buildToolSelector(model.ToolThreadMill, func(t model.Tool) {
		toolDia.SetText(fmt.Sprintf("%.4f", t.Diameter))
		toolNum.SetText(fmt.Sprintf("%d", t.ToolNumber))
		feed.SetText(fmt.Sprintf("%.1f", t.FeedRate))
		spindle.SetText(fmt.Sprintf("%d", t.SpindleSpeed))
	})

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Library Tool", toolSelect),
			widget.NewFormItem("Tool Diameter (in)", toolDia),
			widget.NewFormItem("Major Diameter (in)", majorDia),
			widget.NewFormItem("Minor Diameter (in)", minorDia),
			widget.NewFormItem("Threads per Inch", tpi),
			widget.NewFormItem("Thread Depth (in)", threadDepth),
			widget.NewFormItem("Radial Passes (1-5)", passes),
			widget.NewFormItem("Hand", handSelect),
			widget.NewFormItem("Spindle Speed (RPM)", spindle),
			widget.NewFormItem("Feed Rate (in/min)", feed),
			widget.NewFormItem("Safe Z (in)", safeZ),
			widget.NewFormItem("Tool Number", toolNum),
		},
		func(ok bool) {
			if !ok {
				return
			}
			p := params
			p.ToolDiameter, _ = strconv.ParseFloat(toolDia.Text, 64)
			p.MajorDiameter, _ = strconv.ParseFloat(majorDia.Text, 64)
			p.MinorDiameter, _ = strconv.ParseFloat(minorDia.Text, 64)
			p.TPI, _ = strconv.ParseFloat(tpi.Text, 64)
			p.ThreadDepth, _ = strconv.ParseFloat(threadDepth.Text, 64)
			p.Passes, _ = strconv.Atoi(passes.Text)
			p.SpindleSpeed, _ = strconv.Atoi(spindle.Text)
			p.FeedRate, _ = strconv.ParseFloat(feed.Text, 64)
			p.SafeZ, _ = strconv.ParseFloat(safeZ.Text, 64)
			p.ToolNumber, _ = strconv.Atoi(toolNum.Text)
			if handSelect.Selected == "Left Hand" {
				p.Hand = model.LeftHand
			} else {
				p.Hand = model.RightHand
			}
			if !a.reportFieldErrors(p.Validate()) {
				return
			}
			commit(labelEntry.Text, p)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 600))
	form.Show()
}

func (a *App) showAddDrillDialog() {
	params := model.DefaultPeckDrillParams()
	a.config.ApplyToDrill(&params)
	label := fmt.Sprintf("Drill %d", len(a.job.Operations)+1)
	a.showDrillDialog("Add Peck Drill", "Add", label, params, func(label string, p model.PeckDrillParams) {
		a.pushHistory("add " + label)
		a.job.Operations = append(a.job.Operations, model.NewPeckDrillOperation(label, p))
		a.refreshOperationsList()
	})
}

func (a *App) showDrillDialog(title, confirm, label string, params model.PeckDrillParams, commit func(string, model.PeckDrillParams)) {
	labelEntry := widget.NewEntry()
	labelEntry.SetText(label)

	toolDia := floatField(params.ToolDiameter)
	totalDepth := floatField(params.TotalDepth)
	peckDepth := floatField(params.PeckDepth)
	spindle := intField(params.SpindleSpeed)
	feed := floatField(params.FeedRate)
	safeZ := floatField(params.SafeZ)
	toolNum := intField(params.ToolNumber)

	positions := widget.NewMultiLineEntry()
	positions.SetPlaceHolder("One hole per line: X,Y\nEmpty means a single hole at the origin")
	positions.SetText(formatPositions(params.Positions))
	positions.SetMinRowsVisible(4)

	toolSelect := a.buildToolSelector(model.ToolDrill, func(t model.Tool) {
		toolDia.SetText(fmt.Sprintf("%.4f", t.Diameter))
		toolNum.SetText(fmt.Sprintf("%d", t.ToolNumber))
		feed.SetText(fmt.Sprintf("%.1f", t.FeedRate))
		spindle.SetText(fmt.Sprintf("%d", t.SpindleSpeed))
	})

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Library Tool", toolSelect),
			widget.NewFormItem("Drill Diameter (in)", toolDia),
			widget.NewFormItem("Total Depth (in)", totalDepth),
			widget.NewFormItem("Peck Depth (in)", peckDepth),
			widget.NewFormItem("Hole Positions", positions),
			widget.NewFormItem("Spindle Speed (RPM)", spindle),
			widget.NewFormItem("Feed Rate (in/min)", feed),
			widget.NewFormItem("Safe Z (in)", safeZ),
			widget.NewFormItem("Tool Number", toolNum),
		},
		func(ok bool) {
			if !ok {
				return
			}
			p := params
			p.ToolDiameter, _ = strconv.ParseFloat(toolDia.Text, 64)
			p.TotalDepth, _ = strconv.ParseFloat(totalDepth.Text, 64)
			p.PeckDepth, _ = strconv.ParseFloat(peckDepth.Text, 64)
			p.SpindleSpeed, _ = strconv.Atoi(spindle.Text)
			p.FeedRate, _ = strconv.ParseFloat(feed.Text, 64)
			p.SafeZ, _ = strconv.ParseFloat(safeZ.Text, 64)
			p.ToolNumber, _ = strconv.Atoi(toolNum.Text)

			pts, err := parsePositions(positions.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			p.Positions = pts

			if !a.reportFieldErrors(p.Validate()) {
				return
			}
			commit(labelEntry.Text, p)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 560))
	form.Show()
}

// reportFieldErrors shows a dialog listing validation failures. Returns true
// when the params are clean.
func (a *App) reportFieldErrors(errs []model.FieldError) bool {
	if len(errs) == 0 {
		return true
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	dialog.ShowError(fmt.Errorf("invalid parameters:\n%s", strings.Join(lines, "\n")), a.window)
	return false
}

func (a *App) buildToolSelector(toolType model.ToolType, apply func(model.Tool)) *widget.Select {
	sel := widget.NewSelect(a.library.Names(toolType), func(selected string) {
		if t := a.library.FindByName(selected); t != nil {
			apply(*t)
		}
	})
	sel.PlaceHolder = "(manual entry)"
	return sel
}

func floatField(v float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(v, 'f', -1, 64))
	return e
}

func intField(v int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(v))
	return e
}

func formatPositions(pts []model.Point2D) string {
	var b strings.Builder
	for _, p := range pts {
		fmt.Fprintf(&b, "%g,%g\n", p.X, p.Y)
	}
	return b.String()
}

func parsePositions(text string) ([]model.Point2D, error) {
	var pts []model.Point2D
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected X,Y", i+1)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("line %d: invalid coordinate %q", i+1, line)
		}
		pts = append(pts, model.Point2D{X: x, Y: y})
	}
	return pts, nil
}

// ─── Program Panel ─────────────────────────────────────────

func (a *App) buildProgramPanel() fyne.CanvasObject {
	a.programEntry = widget.NewMultiLineEntry()
	a.programEntry.SetPlaceHolder("Generated G-code appears here.")
	a.programEntry.TextStyle = fyne.TextStyle{Monospace: true}

	a.previewContainer = container.NewStack(
		widget.NewLabel("No toolpath to preview."),
	)

	a.profileLabel = widget.NewLabel("Profile: " + a.job.Profile)

	generateBtn := widget.NewButtonWithIcon("Generate", theme.MediaPlayIcon(), func() {
		a.generateProgram()
	})
	copyBtn := widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), func() {
		if a.programEntry.Text == "" {
			return
		}
		a.window.Clipboard().SetContent(a.programEntry.Text)
	})

	return container.NewBorder(
		container.NewHBox(
			a.profileLabel,
			layout.NewSpacer(),
			copyBtn,
			generateBtn,
		),
		nil, nil, nil,
		container.NewHSplit(
			a.programEntry,
			a.previewContainer,
		),
	)
}

func (a *App) clearProgram() {
	if a.programEntry == nil {
		return
	}
	a.programEntry.SetText("")
	a.previewContainer.RemoveAll()
	a.previewContainer.Add(widget.NewLabel("No toolpath to preview."))
	a.previewContainer.Refresh()
	a.profileLabel.SetText("Profile: " + a.job.Profile)
}

func (a *App) generateProgram() {
	if len(a.job.Operations) == 0 {
		dialog.ShowInformation("Nothing to generate", "Add at least one operation first.", a.window)
		return
	}

	for _, op := range a.job.Operations {
		if errs := op.Validate(); len(errs) > 0 {
			dialog.ShowError(fmt.Errorf("operation %q: %s", op.Label, errs[0].Error()), a.window)
			return
		}
	}

	programs, err := gcode.New(a.job.Profile).GenerateJob(a.job)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	program := strings.Join(programs, "\n")
	a.programEntry.SetText(program)
	a.profileLabel.SetText("Profile: " + a.job.Profile)

	a.previewContainer.RemoveAll()
	a.previewContainer.Add(widgets.RenderProgramPreview(program, 420, 420))
	a.previewContainer.Refresh()
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	c := &a.config

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	machineSection := widget.NewCard("Machine", "", container.NewGridWithColumns(2,
		widget.NewLabel("Machine Profile"), a.buildProfileSelector(),
		widget.NewLabel("Default Safe Z (in)"), floatEntry(&c.DefaultSafeZ),
		widget.NewLabel("Default Feed Rate (in/min)"), floatEntry(&c.DefaultFeedRate),
		widget.NewLabel("Default Spindle (RPM)"), intEntry(&c.DefaultSpindle),
	))

	modelEntry := widget.NewEntry()
	modelEntry.SetPlaceHolder(ai.DefaultModel)
	modelEntry.SetText(c.AnthropicModel)
	modelEntry.OnChanged = func(text string) {
		c.AnthropicModel = strings.TrimSpace(text)
	}

	aiSection := widget.NewCard("AI Assist", "", container.NewGridWithColumns(2,
		widget.NewLabel("Anthropic Model"), modelEntry,
	))

	saveBtn := widget.NewButtonWithIcon("Save Settings", theme.DocumentSaveIcon(), func() {
		if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Settings Saved", "Settings written to "+project.DefaultConfigPath(), a.window)
	})

	exportBtn := widget.NewButton("Export All Data...", func() {
		a.exportAllData()
	})
	importBtn := widget.NewButton("Import All Data...", func() {
		a.importAllData()
	})

	backupSection := widget.NewCard("Backup", "", container.NewHBox(exportBtn, importBtn))

	return container.NewVScroll(container.NewVBox(
		machineSection,
		aiSection,
		backupSection,
		saveBtn,
	))
}

func (a *App) buildProfileSelector() *widget.Select {
	selector := widget.NewSelect(model.GetProfileNames(), func(selected string) {
		a.job.Profile = selected
		a.config.DefaultProfile = selected
		if a.profileLabel != nil {
			a.profileLabel.SetText("Profile: " + selected)
		}
	})
	selector.SetSelected(a.job.Profile)
	return selector
}

func (a *App) exportAllData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		profiles, _ := project.LoadCustomProfilesFromDefault()
		if err := project.ExportAllData(writer.URI().Path(), a.config, profiles, a.presets); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("millcode-backup.json")
	d.Show()
}

func (a *App) importAllData() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config = data.Config
		a.presets = data.Presets
		if err := project.SaveCustomProfilesToDefault(data.Profiles); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshPresetList()
		dialog.ShowInformation("Import Complete", "Settings, profiles, and presets restored.", a.window)
	}, a.window)
	d.Show()
}

// ─── AI Assist Panel ───────────────────────────────────────

func (a *App) buildAIPanel() fyne.CanvasObject {
	diaEntry := floatField(0.25)
	depthEntry := floatField(1.0)
	feedEntry := floatField(5.0)

	output := widget.NewMultiLineEntry()
	output.SetPlaceHolder("Delegated program and validation checks appear here.")
	output.TextStyle = fyne.TextStyle{Monospace: true}

	status := widget.NewLabel("")

	generateBtn := widget.NewButtonWithIcon("Generate with Claude", theme.MediaPlayIcon(), func() {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			dialog.ShowError(fmt.Errorf("ANTHROPIC_API_KEY is not set"), a.window)
			return
		}
		dia, _ := strconv.ParseFloat(diaEntry.Text, 64)
		depth, _ := strconv.ParseFloat(depthEntry.Text, 64)
		feed, _ := strconv.ParseFloat(feedEntry.Text, 64)
		if dia <= 0 || depth <= 0 || feed <= 0 {
			dialog.ShowError(fmt.Errorf("diameter, depth, and feed rate must be > 0"), a.window)
			return
		}

		status.SetText("Generating...")
		gen := ai.New(apiKey, a.config.AnthropicModel)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			result, err := gen.Generate(ctx, dia, depth, feed)
			fyne.Do(func() {
				if err != nil {
					status.SetText("")
					dialog.ShowError(err, a.window)
					return
				}
				var b strings.Builder
				b.WriteString(result.Program)
				b.WriteString("\n( CHECKS )\n")
				for _, check := range result.Checks {
					fmt.Fprintf(&b, "( %s )\n", strings.ToUpper(check))
				}
				output.SetText(b.String())
				if result.Passed {
					status.SetText("All checks passed.")
				} else {
					status.SetText("Checks reported problems; review before running.")
				}
			})
		}()
	})

	params := widget.NewCard("Peck Drill Parameters", "", container.NewGridWithColumns(2,
		widget.NewLabel("Hole Diameter (in)"), diaEntry,
		widget.NewLabel("Hole Depth (in)"), depthEntry,
		widget.NewLabel("Feed Rate (in/min)"), feedEntry,
	))

	return container.NewBorder(
		container.NewVBox(
			params,
			container.NewHBox(generateBtn, status),
		),
		nil, nil, nil,
		output,
	)
}

// ─── Tool Library Panel ────────────────────────────────────

func (a *App) buildLibraryPanel() fyne.CanvasObject {
	a.libraryContainer = container.NewVBox()
	a.refreshLibraryList()

	a.presetContainer = container.NewVBox()
	a.refreshPresetList()

	addToolBtn := widget.NewButtonWithIcon("Add Tool", theme.ContentAddIcon(), func() {
		a.showAddToolDialog()
	})
	savePresetBtn := widget.NewButtonWithIcon("Save Operation as Preset", theme.DocumentSaveIcon(), func() {
		a.showSavePresetDialog()
	})

	toolsCard := widget.NewCard("Tools", "", container.NewVBox(
		container.NewHBox(layout.NewSpacer(), addToolBtn),
		a.libraryContainer,
	))
	presetsCard := widget.NewCard("Operation Presets", "", container.NewVBox(
		container.NewHBox(layout.NewSpacer(), savePresetBtn),
		a.presetContainer,
	))

	return container.NewVScroll(container.NewVBox(toolsCard, presetsCard))
}

func (a *App) refreshLibraryList() {
	a.libraryContainer.RemoveAll()

	header := container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Dia (in)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Slot", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Feed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("RPM", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.libraryContainer.Add(header)
	a.libraryContainer.Add(widget.NewSeparator())

	for i := range a.library.Tools {
		idx := i // capture
		t := a.library.Tools[idx]
		row := container.NewGridWithColumns(7,
			widget.NewLabel(t.Name),
			widget.NewLabel(string(t.Type)),
			widget.NewLabel(fmt.Sprintf("%.4f", t.Diameter)),
			widget.NewLabel(fmt.Sprintf("T%d", t.ToolNumber)),
			widget.NewLabel(fmt.Sprintf("%.1f", t.FeedRate)),
			widget.NewLabel(fmt.Sprintf("%d", t.SpindleSpeed)),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.library.Tools = append(a.library.Tools[:idx], a.library.Tools[idx+1:]...)
				a.refreshLibraryList()
			}),
		)
		a.libraryContainer.Add(row)
	}
	a.libraryContainer.Refresh()
}

func (a *App) showAddToolDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("1/8\" End Mill")

	typeSelect := widget.NewSelect([]string{"endmill", "threadmill", "drill"}, nil)
	typeSelect.SetSelected("endmill")

	diaEntry := widget.NewEntry()
	diaEntry.SetPlaceHolder("Diameter in inches")
	slotEntry := intField(len(a.library.Tools) + 1)
	feedEntry := floatField(a.config.DefaultFeedRate)
	rpmEntry := intField(a.config.DefaultSpindle)

	form := dialog.NewForm("Add Tool", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Type", typeSelect),
			widget.NewFormItem("Diameter (in)", diaEntry),
			widget.NewFormItem("Tool Number", slotEntry),
			widget.NewFormItem("Feed Rate (in/min)", feedEntry),
			widget.NewFormItem("Spindle Speed (RPM)", rpmEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			dia, _ := strconv.ParseFloat(diaEntry.Text, 64)
			slot, _ := strconv.Atoi(slotEntry.Text)
			feed, _ := strconv.ParseFloat(feedEntry.Text, 64)
			rpm, _ := strconv.Atoi(rpmEntry.Text)
			if nameEntry.Text == "" || dia <= 0 || slot < 1 {
				dialog.ShowError(fmt.Errorf("name, diameter, and tool number are required"), a.window)
				return
			}
			tool := model.NewTool(nameEntry.Text, model.ToolType(typeSelect.Selected), dia, slot, feed, rpm)
			a.library.Tools = append(a.library.Tools, tool)
			a.refreshLibraryList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 380))
	form.Show()
}

func (a *App) refreshPresetList() {
	if a.presetContainer == nil {
		return
	}
	a.presetContainer.RemoveAll()

	if len(a.presets.Presets) == 0 {
		a.presetContainer.Add(widget.NewLabel("No presets saved yet."))
		a.presetContainer.Refresh()
		return
	}

	for i := range a.presets.Presets {
		p := a.presets.Presets[i]
		id := p.ID
		row := container.NewGridWithColumns(4,
			widget.NewLabel(p.Name),
			widget.NewLabel(p.Kind.String()),
			widget.NewButtonWithIcon("Insert", theme.ContentAddIcon(), func() {
				preset := a.presets.FindByID(id)
				if preset == nil {
					return
				}
				a.pushHistory("insert preset " + preset.Name)
				a.job.Operations = append(a.job.Operations, preset.ToOperation(preset.Name))
				a.refreshOperationsList()
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.presets.Remove(id)
				a.savePresets()
				a.refreshPresetList()
			}),
		)
		a.presetContainer.Add(row)
	}
	a.presetContainer.Refresh()
}

func (a *App) showSavePresetDialog() {
	if len(a.job.Operations) == 0 {
		dialog.ShowInformation("No operations", "Add an operation before saving a preset.", a.window)
		return
	}

	labels := make([]string, len(a.job.Operations))
	for i, op := range a.job.Operations {
		labels[i] = op.Label
	}
	opSelect := widget.NewSelect(labels, nil)
	opSelect.SetSelectedIndex(0)

	nameEntry := widget.NewEntry()
	nameEntry.SetText(labels[0])
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Operation", opSelect),
			widget.NewFormItem("Preset Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			idx := opSelect.SelectedIndex()
			if idx < 0 || nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("select an operation and give the preset a name"), a.window)
				return
			}
			a.presets.Add(model.NewPresetFromOperation(nameEntry.Text, descEntry.Text, a.job.Operations[idx]))
			a.savePresets()
			a.refreshPresetList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 260))
	form.Show()
}

func (a *App) savePresets() {
	path, err := project.DefaultPresetsPath()
	if err != nil {
		return
	}
	if err := project.SavePresets(path, a.presets); err != nil {
		dialog.ShowError(err, a.window)
	}
}

// ─── History ───────────────────────────────────────────────

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.job.Operations, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.job.Operations, "current"))
	if !ok {
		return
	}
	a.job.Operations = snap.Operations
	a.refreshOperationsList()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.job.Operations, "current"))
	if !ok {
		return
	}
	a.job.Operations = snap.Operations
	a.refreshOperationsList()
}

// ─── Save / Load ───────────────────────────────────────────

func (a *App) saveJob() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveJob(path, a.job); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberRecentJob(path)
	}, a.window)
	d.SetFileName(a.job.Name + project.JobFileExtension)
	d.Show()
}

func (a *App) loadJob() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		job, err := project.LoadJob(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.job = job
		a.history.Clear()
		a.refreshOperationsList()
		a.clearProgram()
		a.rememberRecentJob(path)
	}, a.window)
	d.Show()
}

func (a *App) rememberRecentJob(path string) {
	a.config.AddRecentJob(path, maxRecentJobs)
	// Best effort; the recent list is a convenience, not project data.
	_ = project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

// ─── Export ────────────────────────────────────────────────

func (a *App) exportProgram() {
	if a.programEntry == nil || a.programEntry.Text == "" {
		dialog.ShowInformation("No program", "Generate a program first before exporting.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.SaveProgram(writer.URI().Path(), a.programEntry.Text); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Program saved to %s", writer.URI().Path()), a.window)
		}
	}, a.window)
	d.SetFileName(a.job.Name + ".nc")
	d.Show()
}

func (a *App) exportSetupSheet() {
	if len(a.job.Operations) == 0 {
		dialog.ShowInformation("No operations", "Add operations before exporting a setup sheet.", a.window)
		return
	}

	programs, err := gcode.New(a.job.Profile).GenerateJob(a.job)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.ExportSetupSheet(writer.URI().Path(), a.job, programs); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Setup sheet saved to %s", writer.URI().Path()), a.window)
		}
	}, a.window)
	d.SetFileName(a.job.Name + "-setup.pdf")
	d.Show()
}

func (a *App) exportLabels() {
	if len(a.job.Operations) == 0 {
		dialog.ShowInformation("No operations", "Add operations before exporting tool labels.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.ExportLabels(writer.URI().Path(), a.job); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Labels saved to %s", writer.URI().Path()), a.window)
		}
	}, a.window)
	d.SetFileName(a.job.Name + "-labels.pdf")
	d.Show()
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := holeimporter.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := holeimporter.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := holeimporter.ImportDXF(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result holeimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		// Just log warnings, don't block
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	if len(result.Holes) > 0 {
		base := model.DefaultPeckDrillParams()
		a.config.ApplyToDrill(&base)
		ops := holeimporter.ToOperations(result.Holes, base)

		a.pushHistory(fmt.Sprintf("import %d holes", len(result.Holes)))
		a.job.Operations = append(a.job.Operations, ops...)
		a.refreshOperationsList()

		msg := fmt.Sprintf("Successfully imported %d holes into %d operations.", len(result.Holes), len(ops))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
