package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/forsa-manager/internal/client/client"
	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/gallery"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/client/session"
)

var (
	errUsage        = errors.New("usage")
	errNothingPaged = errors.New("nothing to page through on this screen")
	errNoAdOpen     = errors.New("no ad is open")
)

// usageError carries the usage line of a command invoked with bad arguments.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }
func (e usageError) Unwrap() error { return errUsage }

func (a *App) Home(ctx context.Context) error {
	if err := a.mount(ctx, ScreenHome); err != nil {
		return err
	}
	counters, err := a.dash.Fetch(ctx)
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, session.ErrNoSession) {
		return err
	}
	if err != nil {
		a.log.Warn(ctx, "dashboard unavailable", "error", err)
	}
	a.write(renderDashboard(a.styles, counters))
	return nil
}

func (a *App) Users(ctx context.Context) error {
	if err := a.mount(ctx, ScreenUsers); err != nil {
		return err
	}
	if err := a.users.Load(ctx); err != nil {
		return err
	}
	a.showUsers()
	return nil
}

func (a *App) showUsers() {
	a.write(renderUsers(a.styles, a.users.Current(), a.userMod.Busy))
	all, visible := a.users.Counts()
	a.write(renderPager(a.styles, a.users.State(), a.users.PaginationWindow(), all, visible))
}

// Search filters the user roster. Without arguments it clears the filter.
func (a *App) Search(ctx context.Context, args []string) error {
	if err := a.mount(ctx, ScreenUsers); err != nil {
		return err
	}
	if len(args) == 0 {
		if err := a.users.ClearSearch(); err != nil {
			return err
		}
		a.showUsers()
		return nil
	}
	if len(args) < 2 {
		return usageError("search name|phone <term>")
	}
	field, err := collection.ParseField(args[0])
	if err != nil {
		return err
	}
	if err := a.users.SetSearch(field, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.showUsers()
	return nil
}

// DeleteUser removes the user at row n of the current page, or with the
// given id.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if err := a.mount(ctx, ScreenUsers); err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("delete <n|id>")
	}
	id, err := pick(a.users, args[0])
	if err != nil {
		return err
	}
	msg, err := a.userMod.Delete(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	a.showUsers()
	return nil
}

func (a *App) ToggleSpecial(ctx context.Context, args []string) error {
	if err := a.mount(ctx, ScreenUsers); err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("special <n|id>")
	}
	id, err := pick(a.users, args[0])
	if err != nil {
		return err
	}
	msg, err := a.userMod.ToggleSpecial(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	a.showUsers()
	return nil
}

func (a *App) Ads(ctx context.Context) error {
	if err := a.mount(ctx, ScreenAds); err != nil {
		return err
	}
	a.adMod.Close()
	if err := a.ads.Load(ctx); err != nil {
		return err
	}
	a.showAds()
	return nil
}

func (a *App) showAds() {
	a.write(renderAds(a.styles, a.ads.Current(), a.now()))
	all, visible := a.ads.Counts()
	a.write(renderPager(a.styles, a.ads.State(), a.ads.PaginationWindow(), all, visible))
}

// OpenAd shows the detail view of one pending ad.
func (a *App) OpenAd(ctx context.Context, args []string) error {
	if err := a.mount(ctx, ScreenAd); err != nil {
		return err
	}
	if len(args) != 1 {
		a.setScreen(ScreenAds)
		return usageError("ad <n|id>")
	}
	id, err := pick(a.ads, args[0])
	if err != nil {
		a.setScreen(ScreenAds)
		return err
	}
	ad, err := a.adMod.Open(id)
	if err != nil {
		a.setScreen(ScreenAds)
		return err
	}
	a.write(renderAd(a.styles, ad, a.now()))
	return nil
}

func (a *App) CloseAd(ctx context.Context) error {
	if err := a.mount(ctx, ScreenAds); err != nil {
		return err
	}
	a.adMod.Close()
	a.showAds()
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	return a.decide(ctx, args, "approve", a.adMod.Approve)
}

func (a *App) Reject(ctx context.Context, args []string) error {
	return a.decide(ctx, args, "reject", a.adMod.Reject)
}

// decide runs approve or reject on the named ad, or on the open one.
func (a *App) decide(ctx context.Context, args []string, name string, action func(context.Context, string) (string, error)) error {
	if _, err := a.gate.Require(ctx); err != nil {
		return err
	}

	var id string
	switch len(args) {
	case 0:
		ad, ok := a.adMod.Opened()
		if !ok {
			return errNoAdOpen
		}
		id = ad.ID
	case 1:
		var err error
		if id, err = pick(a.ads, args[0]); err != nil {
			return err
		}
	default:
		return usageError(name + " [n|id]")
	}

	msg, err := action(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	if _, open := a.adMod.Opened(); !open {
		a.setScreen(ScreenAds)
		a.showAds()
	}
	return nil
}

// Page, Next and Prev move through whichever list is mounted.
func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError("page <n>")
	}
	return a.turn(ctx, func(ps collection.PageState) int { return n })
}

func (a *App) Next(ctx context.Context) error {
	return a.turn(ctx, func(ps collection.PageState) int { return ps.CurrentPage + 1 })
}

func (a *App) Prev(ctx context.Context) error {
	return a.turn(ctx, func(ps collection.PageState) int { return ps.CurrentPage - 1 })
}

func (a *App) turn(ctx context.Context, target func(collection.PageState) int) error {
	if _, err := a.gate.Require(ctx); err != nil {
		return err
	}
	switch a.Screen() {
	case ScreenUsers:
		if err := a.users.GoTo(target(a.users.State())); err != nil {
			return err
		}
		a.showUsers()
	case ScreenAds:
		if err := a.ads.GoTo(target(a.ads.State())); err != nil {
			return err
		}
		a.showAds()
	default:
		return errNothingPaged
	}
	return nil
}

func (a *App) Images(ctx context.Context) error {
	if err := a.mount(ctx, ScreenImages); err != nil {
		return err
	}
	if err := a.gallery.Load(ctx); err != nil {
		return err
	}
	a.write(renderImages(a.styles, a.gallery.Assets()))
	return nil
}

// Upload resizes and uploads every path. Each file is reported on its own;
// one failure does not stop the rest.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if err := a.mount(ctx, ScreenImages); err != nil {
		return err
	}
	if len(paths) == 0 {
		return usageError("upload <path>...")
	}

	observe := func(name string, s gallery.State) {
		a.log.Debug(ctx, "upload state", "file", name, "state", s.String())
	}
	for _, r := range a.gallery.UploadFiles(ctx, paths, observe) {
		if r.Err != nil {
			a.printf("%s: %s\n", r.Name, UserMessage(r.Err))
			continue
		}
		a.printf("%s: Image uploaded successfully! (%s)\n", r.Name, pictureSummary(r.Asset.Source))
	}
	a.write(renderImages(a.styles, a.gallery.Assets()))
	return nil
}

func (a *App) RemoveImage(ctx context.Context, args []string) error {
	if err := a.mount(ctx, ScreenImages); err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("rmimage <n|id>")
	}
	id := args[0]
	if n, err := strconv.Atoi(args[0]); err == nil {
		if asset, ok := a.gallery.At(n); ok {
			id = asset.ID
		}
	}
	if err := a.gallery.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Image deleted.\n")
	a.write(renderImages(a.styles, a.gallery.Assets()))
	return nil
}

// pick resolves a row number on the current page, or an item id.
func pick[T models.Item](s *collection.Store[T], arg string) (string, error) {
	if !s.Loaded() {
		return "", collection.ErrNotLoaded
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if page := s.Current(); n >= 1 && n <= len(page) {
			return page[n-1].ItemID(), nil
		}
	}
	if _, ok := s.Get(arg); ok {
		return arg, nil
	}
	return "", fmt.Errorf("%w: %s", collection.ErrNotFound, arg)
}
