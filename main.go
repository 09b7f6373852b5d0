package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/employee-desk/v2/assets"
	"github.com/employee-desk/v2/core"
	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/config"
	"github.com/employee-desk/v2/internal/logging"
	"github.com/employee-desk/v2/internal/session"
	"github.com/employee-desk/v2/internal/types"
	"github.com/employee-desk/v2/services"
	"github.com/employee-desk/v2/ui"
)

const appID = "com.employee-desk.app"

func main() {
	env := flag.String("env", "development", "environment [dev | development | prod | production]")
	configPath := flag.String("config", "./config.toml", "path for the optional TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormat == "json",
	})
	log.Infof("running in [%s] environment against %s", cfg.Environment, cfg.APIURL)

	tokens, err := core.OpenTokenStore(cfg)
	if err != nil {
		log.Fatalf("open token store: %s", err)
	}

	apiClient, err := services.NewApiClient(cfg.APIURL, &http.Client{Timeout: cfg.Timeout()}, tokens)
	if err != nil {
		log.Fatalf("new api client: %s", err)
	}
	svc := services.New(apiClient)

	store := session.NewStore()
	restored, err := session.Restore(store, tokens, time.Now())
	if err != nil {
		log.Errorf("restore session: %s", err)
	}

	deskApp := app.NewWithID(appID)
	deskApp.SetIcon(assets.AppIcon())

	win := deskApp.NewWindow("Employee Management")
	win.Resize(fyne.NewSize(960, 640))

	router := ui.NewRouter(win)
	toaster := ui.NewToaster(win)
	registerPages(router, toaster, store, svc.Auth, tokens, cfg)

	startRoute := core.RouteLogin
	if restored {
		state := store.State()
		if target, err := core.RedirectTarget(state.User.Role); err == nil {
			log.Infof("restored session of %s", state.User.Email)
			startRoute = target
		} else {
			log.Warnf("restored session has no landing page: %s", err)
		}
	}
	router.Navigate(startRoute, false)

	win.ShowAndRun()

	if err := shutdown(tokens, logCloser); err != nil {
		fmt.Printf("shutdown: %s\n", err)
	}
}

func registerPages(
	router *ui.Router,
	toaster *ui.Toaster,
	store *session.Store,
	authSvc *services.AuthService,
	tokens core.TokenStore,
	cfg *config.Config,
) {
	logout := func() error {
		return session.Logout(store, tokens)
	}

	router.Handle(core.RouteLogin, func() ui.Page {
		flow := core.NewLoginFlow(core.LoginFlowParams{
			Store: store,
			Login: func(ctx context.Context, creds auth.Credentials) error {
				return session.Login(ctx, store, authSvc, tokens, creds)
			},
			Notifier:      toaster,
			Navigator:     router,
			RedirectDelay: cfg.Redirect(),
			Logout:        logout,
		})
		return ui.NewLoginView(flow, store)
	})

	router.Handle(core.RouteSignup, func() ui.Page {
		signup := func(ctx context.Context, req types.AdminSignupRequest) error {
			_, err := authSvc.AdminSignup(ctx, req)
			return err
		}
		return ui.NewSignupView(signup, toaster, router.Back)
	})

	router.Handle(core.RouteAdminHome, func() ui.Page {
		return ui.NewHomeView("Admin Home", store.State(), logout, router)
	})
	router.Handle(core.RouteEmployeeDashboard, func() ui.Page {
		return ui.NewHomeView("Employee Dashboard", store.State(), logout, router)
	})
}

func shutdown(closers ...io.Closer) error {
	var err error
	for _, c := range closers {
		if c != nil {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
