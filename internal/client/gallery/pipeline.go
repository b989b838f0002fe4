// Package gallery manages the application image gallery: a bulk fetch of
// existing images, and an upload pipeline that never sends original bytes.
//
// Each upload walks Idle → FileSelected → Resizing → Uploading and ends in
// Cached (appended to the gallery) or Failed (back to Idle, nothing
// appended). Several files run as independent machines.
package gallery

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotAnImage      = errors.New("not an image")
	ErrNotAcknowledged = errors.New("image has no server id yet; reload the gallery first")
	ErrNoSuchAsset     = errors.New("no such image")
	ErrStaleResponse   = errors.New("response superseded by a newer load")
)

type API interface {
	ListImages(ctx context.Context) ([]models.ImageRecord, error)
	UploadImage(ctx context.Context, content string) (*models.ImageRecord, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type Options struct {
	Width       int
	Height      int
	Quality     int
	Concurrency int
}

// Observer is told about every state an upload enters.
type Observer func(name string, s State)

type Pipeline struct {
	api      API
	opts     Options
	log      logging.Logger
	newID    func() string
	readFile func(string) ([]byte, error)

	mu     sync.Mutex
	assets []models.ImageAsset
	seq    uint64
}

func New(api API, opts Options, log logging.Logger) *Pipeline {
	if opts.Width < 1 {
		opts.Width = 200
	}
	if opts.Height < 1 {
		opts.Height = 300
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = 70
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Pipeline{
		api:      api,
		opts:     opts,
		log:      log.With("component", "gallery"),
		newID:    uuid.NewString,
		readFile: os.ReadFile,
	}
}

// Load replaces the gallery with the server's images.
func (p *Pipeline) Load(ctx context.Context) error {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	recs, err := p.api.ListImages(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		return ErrStaleResponse
	}
	if err != nil {
		p.log.Warn(ctx, "image list failed", "error", err)
		return fmt.Errorf("load images: %w", err)
	}

	assets := make([]models.ImageAsset, 0, len(recs))
	for _, r := range recs {
		assets = append(assets, p.asset(r.ID, models.DataURL(r.Content)))
	}
	p.assets = assets
	p.log.Info(ctx, "images loaded", "count", len(assets))
	return nil
}

// asset builds a cache entry, minting a provisional id when the server
// gave none.
func (p *Pipeline) asset(id, source string) models.ImageAsset {
	if id == "" {
		return models.ImageAsset{ID: p.newID(), Source: source, Provisional: true}
	}
	return models.ImageAsset{ID: id, Source: source}
}

// Assets returns a copy of the gallery in display order.
func (p *Pipeline) Assets() []models.ImageAsset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ImageAsset(nil), p.assets...)
}

// Result is the outcome of one upload.
type Result struct {
	Name  string
	State State
	Asset models.ImageAsset
	// Size is the byte length of the resized JPEG that was sent.
	Size int
	Err  error
}

// UploadFile reads path and runs it through the pipeline.
func (p *Pipeline) UploadFile(ctx context.Context, path string, observe Observer) Result {
	data, err := p.readFile(path)
	if err != nil {
		return p.fail(ctx, filepath.Base(path), observe, fmt.Errorf("read %s: %w", path, err))
	}
	return p.Upload(ctx, filepath.Base(path), data, observe)
}

// Upload runs data through select → resize → encode → upload → cache.
func (p *Pipeline) Upload(ctx context.Context, name string, data []byte, observe Observer) Result {
	if observe == nil {
		observe = func(string, State) {}
	}
	log := p.log.With("file", name)

	if _, err := sniff(data); err != nil {
		return p.fail(ctx, name, observe, err)
	}
	observe(name, FileSelected)

	observe(name, Resizing)
	resized, err := Resize(data, p.opts.Width, p.opts.Height, p.opts.Quality)
	if err != nil {
		return p.fail(ctx, name, observe, err)
	}
	content := base64.StdEncoding.EncodeToString(resized)

	observe(name, Uploading)
	rec, err := p.api.UploadImage(ctx, content)
	if err != nil {
		return p.fail(ctx, name, observe, err)
	}

	source := models.DataURL(content)
	if rec.Content != "" {
		source = models.DataURL(rec.Content)
	}
	a := p.asset(rec.ID, source)
	if a.Provisional {
		log.Warn(ctx, "upload acknowledged without id", "provisional_id", a.ID)
	}

	p.mu.Lock()
	p.assets = append(p.assets, a)
	p.mu.Unlock()

	observe(name, Cached)
	log.Info(ctx, "image uploaded", "id", a.ID, "bytes", len(resized))
	return Result{Name: name, State: Cached, Asset: a, Size: len(resized)}
}

func (p *Pipeline) fail(ctx context.Context, name string, observe Observer, err error) Result {
	if observe == nil {
		observe = func(string, State) {}
	}
	p.log.Warn(ctx, "image upload failed", "file", name, "error", err)
	observe(name, Failed)
	observe(name, Idle)
	return Result{Name: name, State: Failed, Err: err}
}

// UploadFiles runs one machine per path, at most Options.Concurrency at a
// time. A failing file does not stop the others. Results keep input order.
func (p *Pipeline) UploadFiles(ctx context.Context, paths []string, observe Observer) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = p.UploadFile(ctx, path, observe)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Delete removes the image with id from the server and then from the
// gallery. Provisional images are refused.
func (p *Pipeline) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	i := p.indexOf(id)
	var a models.ImageAsset
	if i >= 0 {
		a = p.assets[i]
	}
	p.mu.Unlock()

	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchAsset, id)
	}
	if a.Provisional {
		return ErrNotAcknowledged
	}

	if err := p.api.DeleteImage(ctx, id); err != nil {
		p.log.Warn(ctx, "image delete failed", "id", id, "error", err)
		return fmt.Errorf("delete image %s: %w", id, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// uploads may have appended meanwhile; find the position again
	if i := p.indexOf(id); i >= 0 {
		p.assets = append(p.assets[:i:i], p.assets[i+1:]...)
	}
	return nil
}

// At returns the asset at 1-based position n.
func (p *Pipeline) At(n int) (models.ImageAsset, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > len(p.assets) {
		return models.ImageAsset{}, false
	}
	return p.assets[n-1], true
}

func (p *Pipeline) indexOf(id string) int {
	for i, a := range p.assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}
