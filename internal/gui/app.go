package gui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"dicom-deident/internal/cli"
	dcm "dicom-deident/internal/dicom"
)

const (
	AppTitle  = "DICOM De-identification"
	AppWidth  = 620
	AppHeight = 480
)

// App represents the GUI application
type App struct {
	fyneApp   fyne.App
	window    fyne.Window
	engine    *cli.Engine
	recursive bool

	inputEntry     *widget.Entry
	destEntry      *widget.Entry
	fileCountLabel *widget.Label
	runButton      *widget.Button
	progressBar    *widget.ProgressBar
	statusLabel    *widget.Label
	summaryLabel   *widget.Label

	processingMu sync.Mutex
	processing   bool
}

// NewApp creates a new GUI application around an engine
func NewApp(engine *cli.Engine, recursive bool) *App {
	a := app.NewWithID("deident.desktop")
	a.Settings().SetTheme(&clinicalTheme{})

	return &App{
		fyneApp:   a,
		engine:    engine,
		recursive: recursive,
	}
}

// Run starts the GUI application and blocks until the window is closed
func (a *App) Run() {
	a.window = a.fyneApp.NewWindow(AppTitle)
	a.window.Resize(fyne.NewSize(AppWidth, AppHeight))
	a.window.CenterOnScreen()
	a.window.SetContent(a.build())

	// Confirm before closing if processing
	a.window.SetCloseIntercept(func() {
		if !a.IsProcessing() {
			a.window.Close()
			return
		}
		dialog.ShowConfirm("Confirm Exit",
			"Processing is in progress. Are you sure you want to exit?",
			func(confirm bool) {
				if confirm {
					a.window.Close()
				}
			}, a.window)
	})

	a.window.ShowAndRun()
}

// IsProcessing reports whether a batch is running
func (a *App) IsProcessing() bool {
	a.processingMu.Lock()
	defer a.processingMu.Unlock()
	return a.processing
}

func (a *App) setProcessing(v bool) {
	a.processingMu.Lock()
	a.processing = v
	a.processingMu.Unlock()
}

func (a *App) build() fyne.CanvasObject {
	title := canvas.NewText(AppTitle, ColorTextPrimary)
	title.TextSize = 20
	title.TextStyle = fyne.TextStyle{Bold: true}

	station := widget.NewLabel("StationName: " + a.engine.Anonymizer.StationName())

	a.inputEntry = widget.NewEntry()
	a.inputEntry.SetPlaceHolder("/path/to/dicom/files")
	a.inputEntry.OnChanged = func(string) { a.updateFileCount() }

	a.destEntry = widget.NewEntry()
	a.destEntry.SetPlaceHolder("/path/to/output")

	a.fileCountLabel = widget.NewLabel("")
	a.fileCountLabel.Wrapping = fyne.TextWrapWord

	a.runButton = widget.NewButton("Anonymize", a.startRun)
	a.runButton.Importance = widget.HighImportance

	a.progressBar = widget.NewProgressBar()
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Truncation = fyne.TextTruncateEllipsis
	a.summaryLabel = widget.NewLabel("")
	a.summaryLabel.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Input folder", a.folderRow(a.inputEntry)),
		widget.NewFormItem("Destination", a.folderRow(a.destEntry)),
	)

	return container.NewPadded(container.NewVBox(
		title,
		station,
		widget.NewSeparator(),
		form,
		a.fileCountLabel,
		container.NewCenter(a.runButton),
		a.progressBar,
		a.statusLabel,
		a.summaryLabel,
	))
}

func (a *App) folderRow(entry *widget.Entry) fyne.CanvasObject {
	browse := widget.NewButton("Browse", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			entry.SetText(uri.Path())
		}, a.window)
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}

func (a *App) updateFileCount() {
	input := a.inputEntry.Text
	if info, err := os.Stat(input); err != nil || !info.IsDir() {
		a.fileCountLabel.SetText("")
		return
	}

	go func() {
		files, err := dcm.FindDicomFiles(input, a.recursive, a.destEntry.Text)
		if err != nil {
			a.fileCountLabel.SetText(fmt.Sprintf("Could not scan folder: %v", err))
			return
		}
		a.fileCountLabel.SetText(fmt.Sprintf("%d DICOM file(s) found", len(files)))
	}()
}

func validateFolders(input, dest string) error {
	if input == "" {
		return errors.New("select an input folder")
	}
	if info, err := os.Stat(input); err != nil || !info.IsDir() {
		return fmt.Errorf("input folder does not exist: %s", input)
	}
	if dest == "" {
		return errors.New("select a destination folder")
	}
	if abs, err := filepath.Abs(dest); err == nil {
		if in, err := filepath.Abs(input); err == nil && abs == in {
			return errors.New("destination must differ from the input folder")
		}
	}
	return nil
}

func (a *App) startRun() {
	input, dest := a.inputEntry.Text, a.destEntry.Text
	if err := validateFolders(input, dest); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.setProcessing(true)
	a.runButton.Disable()
	a.summaryLabel.SetText("")
	a.progressBar.SetValue(0)

	go func() {
		defer func() {
			a.setProcessing(false)
			a.runButton.Enable()
		}()

		files, err := dcm.FindDicomFiles(input, a.recursive, dest)
		if err != nil {
			a.statusLabel.SetText(fmt.Sprintf("Could not scan folder: %v", err))
			return
		}
		if len(files) == 0 {
			a.statusLabel.SetText("No DICOM files found")
			return
		}

		a.progressBar.Max = float64(len(files))
		n := a.engine.Anonymizer.AnonymizeBatchWithProgress(files, dest,
			func(current, total int, filePath, status string) {
				a.progressBar.SetValue(float64(current))
				a.statusLabel.SetText(fmt.Sprintf("%d/%d  %s  %s", current, total, filepath.Base(filePath), status))
			})

		a.summaryLabel.SetText(cli.RunSummary(n, len(files), dest))
	}()
}
