package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/employee-desk/v2/core"
)

// Toaster shows transient notifications in the top-right corner of a window.
type Toaster struct {
	win fyne.Window
}

func NewToaster(win fyne.Window) *Toaster {
	return &Toaster{win: win}
}

// Notify implements core.Notifier. It may be called from any goroutine.
func (t *Toaster) Notify(kind core.NoticeKind, message string, autoClose time.Duration) {
	fyne.Do(func() {
		t.show(kind, message, autoClose)
	})
}

func (t *Toaster) show(kind core.NoticeKind, message string, autoClose time.Duration) {
	var icon fyne.Resource
	switch kind {
	case core.NoticeSuccess:
		icon = theme.NewSuccessThemedResource(theme.ConfirmIcon())
	case core.NoticeError:
		icon = theme.NewErrorThemedResource(theme.ErrorIcon())
	default:
		icon = theme.InfoIcon()
	}

	content := container.NewPadded(container.NewHBox(widget.NewIcon(icon), widget.NewLabel(message)))
	pop := widget.NewPopUp(content, t.win.Canvas())

	size := pop.MinSize()
	canvasSize := t.win.Canvas().Size()
	pop.ShowAtPosition(fyne.NewPos(canvasSize.Width-size.Width-theme.Padding(), theme.Padding()))

	time.AfterFunc(autoClose, func() {
		fyne.Do(pop.Hide)
	})
}
