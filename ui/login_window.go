package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/core"
	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/session"
)

const (
	signInText  = "Sign In"
	loadingText = "Logging in..."
)

// LoginView is the credential-entry page.
type LoginView struct {
	flow  *core.LoginFlow
	creds auth.Credentials

	emailEntry    *widget.Entry
	passwordEntry *widget.Entry
	roleSelect    *widget.Select
	submitButton  *widget.Button
	signupButton  *widget.Button
	progress      *widget.ProgressBarInfinite
	errorLabel    *widget.Label

	content     fyne.CanvasObject
	unsubscribe func()
	// run executes blocking work away from the UI goroutine
	run func(func())
}

// NewLoginView builds the login page around flow. The view follows store to show
// the busy state of a submission.
func NewLoginView(flow *core.LoginFlow, store *session.Store) *LoginView {
	v := &LoginView{
		flow:  flow,
		creds: auth.NewCredentials(),
		run:   func(f func()) { go f() },
	}

	v.emailEntry = widget.NewEntry()
	v.emailEntry.SetPlaceHolder("Enter your email")
	v.emailEntry.OnChanged = func(s string) { v.creds.Email = s }
	v.emailEntry.OnSubmitted = func(string) { v.handleSubmit() }

	v.passwordEntry = widget.NewPasswordEntry()
	v.passwordEntry.SetPlaceHolder("Enter your password")
	v.passwordEntry.OnChanged = func(s string) { v.creds.Password = s }
	v.passwordEntry.OnSubmitted = func(string) { v.handleSubmit() }

	labels := make([]string, 0, len(auth.Roles()))
	for _, r := range auth.Roles() {
		labels = append(labels, r.Label())
	}
	v.roleSelect = widget.NewSelect(labels, func(label string) {
		for _, r := range auth.Roles() {
			if r.Label() == label {
				v.creds.Role = r
				return
			}
		}
	})
	v.roleSelect.SetSelected(auth.DefaultRole.Label())

	v.submitButton = widget.NewButton(signInText, v.handleSubmit)
	v.submitButton.Importance = widget.HighImportance
	v.signupButton = widget.NewButton("Sign Up", flow.SignupRedirect)

	v.progress = widget.NewProgressBarInfinite()
	v.progress.Stop()
	v.progress.Hide()

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Wrapping = fyne.TextWrapWord
	v.errorLabel.Hide()

	form := widget.NewForm(
		widget.NewFormItem("Email Address", v.emailEntry),
		widget.NewFormItem("Password", v.passwordEntry),
		widget.NewFormItem("Account Type", v.roleSelect),
	)

	header := widget.NewLabelWithStyle("Welcome Back", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle("Please enter your credentials to continue", fyne.TextAlignCenter, fyne.TextStyle{})
	footer := container.NewHBox(layout.NewSpacer(), widget.NewLabel("Don't have an account?"), v.signupButton, layout.NewSpacer())

	card := widget.NewCard("", "", container.NewVBox(
		header,
		subtitle,
		form,
		v.errorLabel,
		v.submitButton,
		v.progress,
		widget.NewSeparator(),
		footer,
	))
	v.content = container.NewCenter(container.NewGridWrap(fyne.NewSize(380, 420), card))

	v.unsubscribe = store.Subscribe(func(_, next session.State) {
		fyne.Do(func() { v.render(next) })
	})
	v.render(store.State())

	return v
}

func (v *LoginView) Content() fyne.CanvasObject {
	return v.content
}

// Close stops observing the session and cancels a pending redirect.
func (v *LoginView) Close() {
	v.unsubscribe()
	v.flow.Close()
}

func (v *LoginView) handleSubmit() {
	creds := v.creds
	if err := creds.Validate(); err != nil {
		v.showFieldError(err)
		return
	}
	v.errorLabel.Hide()

	v.run(func() {
		if err := v.flow.Submit(context.Background(), creds); err != nil {
			log.Debugf("login submission ended with: %s", err)
		}
	})
}

func (v *LoginView) showFieldError(err error) {
	var vErr *auth.ValidationError
	if errors.As(err, &vErr) {
		v.errorLabel.SetText(vErr.Error())
	} else {
		v.errorLabel.SetText(err.Error())
	}
	v.errorLabel.Show()
}

func (v *LoginView) render(state session.State) {
	if state.Loading {
		v.submitButton.SetText(loadingText)
		v.submitButton.Disable()
		v.progress.Show()
		v.progress.Start()
		return
	}
	v.submitButton.SetText(signInText)
	v.submitButton.Enable()
	v.progress.Stop()
	v.progress.Hide()
}
