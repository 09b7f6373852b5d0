package ui

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/core"
	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/types"
	"github.com/employee-desk/v2/services"
)

const MsgSignupDone = "Admin account created, please sign in."

// SignupFunc creates an administrator account.
type SignupFunc func(ctx context.Context, req types.AdminSignupRequest) error

// SignupView is the admin registration page.
type SignupView struct {
	signup   SignupFunc
	notifier core.Notifier
	back     func()

	nameEntry     *widget.Entry
	emailEntry    *widget.Entry
	passwordEntry *widget.Entry
	createButton  *widget.Button
	errorLabel    *widget.Label

	content fyne.CanvasObject
	run     func(func())
}

// NewSignupView builds the registration page. back returns to the page that opened it.
func NewSignupView(signup SignupFunc, notifier core.Notifier, back func()) *SignupView {
	v := &SignupView{
		signup:   signup,
		notifier: notifier,
		back:     back,
		run:      func(f func()) { go f() },
	}

	v.nameEntry = widget.NewEntry()
	v.emailEntry = widget.NewEntry()
	v.passwordEntry = widget.NewPasswordEntry()
	v.createButton = widget.NewButton("Create account", v.handleSubmit)
	v.createButton.Importance = widget.HighImportance

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Wrapping = fyne.TextWrapWord
	v.errorLabel.Hide()

	form := widget.NewForm(
		widget.NewFormItem("Name", v.nameEntry),
		widget.NewFormItem("Email Address", v.emailEntry),
		widget.NewFormItem("Password", v.passwordEntry),
	)
	card := widget.NewCard("Admin Signup", "Create an administrator account", container.NewVBox(
		form,
		v.errorLabel,
		v.createButton,
		widget.NewButton("Back to login", back),
	))
	v.content = container.NewCenter(container.NewGridWrap(fyne.NewSize(380, 380), card))
	return v
}

func (v *SignupView) Content() fyne.CanvasObject {
	return v.content
}

func (v *SignupView) Close() {}

func (v *SignupView) handleSubmit() {
	req := types.AdminSignupRequest{
		Name:     v.nameEntry.Text,
		Email:    v.emailEntry.Text,
		Password: v.passwordEntry.Text,
	}
	if err := auth.ValidateStruct(req); err != nil {
		v.errorLabel.SetText(err.Error())
		v.errorLabel.Show()
		return
	}
	v.errorLabel.Hide()
	v.createButton.Disable()

	v.run(func() {
		err := v.signup(context.Background(), req)
		fyne.Do(v.createButton.Enable)
		if err != nil {
			log.Infof("admin signup failed: %s", err)
			msg := "Signup failed."
			var apiErr *services.APIError
			if errors.As(err, &apiErr) {
				msg = apiErr.Message
			}
			v.notifier.Notify(core.NoticeError, msg, 3*time.Second)
			return
		}
		v.notifier.Notify(core.NoticeInfo, MsgSignupDone, 2*time.Second)
		v.back()
	})
}
