package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/client/client"
	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/config"
	"github.com/dmitrijs2005/forsa-manager/internal/client/dashboard"
	"github.com/dmitrijs2005/forsa-manager/internal/client/gallery"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/client/moderation"
	"github.com/dmitrijs2005/forsa-manager/internal/client/repositories"
	"github.com/dmitrijs2005/forsa-manager/internal/client/services"
	"github.com/dmitrijs2005/forsa-manager/internal/client/session"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

// Screen is the view currently mounted in the console.
type Screen string

const (
	ScreenLogin  Screen = "login"
	ScreenHome   Screen = "home"
	ScreenUsers  Screen = "users"
	ScreenAds    Screen = "ads"
	ScreenAd     Screen = "ad"
	ScreenImages Screen = "images"
)

// confirmFn is a test seam for the y/N prompt shown before moderation.
var confirmFn = Confirm

type App struct {
	config *config.Config
	log    logging.Logger
	repos  *repositories.Repositories

	gate    *session.Gate
	auth    services.AuthService
	dash    *dashboard.Aggregator
	users   *collection.Store[models.User]
	ads     *collection.Store[models.Ad]
	userMod *moderation.Users
	adMod   *moderation.Ads
	gallery *gallery.Pipeline

	in     *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex
	styles styles
	now    func() time.Time

	mu     sync.Mutex
	screen Screen
}

// NewApp opens the local session database and wires every component of the
// console against the API at c.APIBaseURL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	repos, err := repositories.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		log:    log,
		repos:  repos,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		styles: defaultStyles(),
		now:    time.Now,
		screen: ScreenLogin,
	}

	a.gate = session.NewGate(repos.Metadata, a.toLogin, log.With("component", "session"))

	api := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(a.gate),
		client.WithUnauthorizedHook(a.gate.OnUnauthorized),
		client.WithLogger(log.With("component", "api")),
	)

	confirm := moderation.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		return confirmFn(a.in, prompt, a.out)
	})

	a.auth = services.NewAuthService(api, a.gate, log.With("component", "auth"))
	a.dash = dashboard.New(api, log.With("component", "dashboard"))
	a.users = collection.NewUsers(c.UsersPageSize, func(ctx context.Context) ([]models.User, error) {
		return api.ListUsers(ctx, 1, c.UsersFetchLimit)
	}, log)
	a.ads = collection.NewAds(c.AdsPageSize, api.ListPendingAds, log)
	a.userMod = moderation.NewUsers(api, a.users, confirm, log.With("component", "moderation"))
	a.adMod = moderation.NewAds(api, a.ads, confirm, log.With("component", "moderation"))
	a.gallery = gallery.New(api, gallery.Options{
		Width:       c.ImageWidth,
		Height:      c.ImageHeight,
		Quality:     c.JPEGQuality,
		Concurrency: c.UploadConcurrency,
	}, log.With("component", "gallery"))

	return a, nil
}

// Run shows the home screen when a session is stored, the login prompt
// otherwise, and then hands over to the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.isLoggedIn(ctx) {
		a.report(a.Home(ctx))
	} else {
		a.report(a.Login(ctx))
	}

	runREPL(ctx, a, a.status, a.in)
}

func (a *App) Close() {
	if err := a.repos.Close(); err != nil {
		a.log.Warn(context.Background(), "failed to close database", "error", err)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok, err := a.gate.Current(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read session", "error", err)
	}
	return ok
}

// toLogin is the gate's redirect.
func (a *App) toLogin(ctx context.Context) {
	a.adMod.Close()
	a.setScreen(ScreenLogin)
}

// setScreen mounts s and returns the previous screen.
func (a *App) setScreen(s Screen) Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.screen
	a.screen = s
	return prev
}

func (a *App) Screen() Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

func (a *App) status() string {
	return string(a.Screen())
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) write(s string) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	io.WriteString(a.out, s)
}

// report prints err for the operator. Superseded loads are silent.
func (a *App) report(err error) {
	if msg := reportMessage(err); msg != "" {
		a.printf("%s\n", msg)
	}
}

// mount runs the session check every gated screen starts with.
func (a *App) mount(ctx context.Context, s Screen) error {
	if _, err := a.gate.Require(ctx); err != nil {
		return err
	}
	a.setScreen(s)
	return nil
}
