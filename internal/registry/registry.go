package registry

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/dominikbraun/graph"

	"github.com/vango-dev/uikit/internal/config"
	"github.com/vango-dev/uikit/internal/errors"
)

// Registry fetches registry items for a project.
type Registry struct {
	baseURL string
	style   string
	region  string
	client  *http.Client
	s3      ObjectGetter
	logger  *slog.Logger

	mu    sync.Mutex
	items map[string]*Item
}

// Option configures a Registry.
type Option func(*Registry)

// WithHTTPClient sets the HTTP client used for registry requests.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Registry) {
		r.client = client
	}
}

// WithS3Client sets the client used for s3:// item references.
func WithS3Client(client ObjectGetter) Option {
	return func(r *Registry) {
		r.s3 = client
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a new Registry.
func New(cfg *config.Config, opts ...Option) *Registry {
	baseURL := cfg.Registry
	if baseURL == "" {
		baseURL = config.DefaultRegistry
	}
	style := cfg.Style
	if style == "" {
		style = config.DefaultStyle
	}
	region := cfg.RegistryRegion
	if region == "" {
		region = config.DefaultRegistryRegion
	}

	r := &Registry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		style:   style,
		region:  region,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.New(slog.DiscardHandler),
		items:  make(map[string]*Item),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type refKind int

const (
	refName refKind = iota
	refURL
	refS3
	refFile
)

func kindOf(ref string) refKind {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return refURL
	case strings.HasPrefix(ref, "s3://"):
		return refS3
	case strings.HasSuffix(ref, ".json"):
		return refFile
	default:
		return refName
	}
}

// IsLocal reports whether ref names an item file on the local disk.
func IsLocal(ref string) bool {
	return kindOf(ref) == refFile
}

// ItemURL returns the registry URL of a named item.
func (r *Registry) ItemURL(name string) string {
	return fmt.Sprintf("%s/styles/%s/%s.json", r.baseURL, r.style, name)
}

// FetchItem retrieves and decodes a single registry item.
func (r *Registry) FetchItem(ctx context.Context, ref string) (*Item, error) {
	r.mu.Lock()
	cached, ok := r.items[ref]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := r.read(ctx, ref)
	if err != nil {
		return nil, err
	}

	var item Item
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&item); err != nil {
		return nil, errors.New("E145").
			WithPath(ref).
			WithDetail("Invalid registry item: " + err.Error())
	}
	normalize(&item, ref)

	r.logger.Debug("fetched registry item", "ref", ref, "name", item.Name, "files", len(item.Files))

	r.mu.Lock()
	r.items[ref] = &item
	r.mu.Unlock()

	return &item, nil
}

// Forget drops a cached item so the next fetch re-reads it.
func (r *Registry) Forget(ref string) {
	r.mu.Lock()
	delete(r.items, ref)
	r.mu.Unlock()
}

// normalize fills the item name from its reference and lets files inherit
// the item type.
func normalize(item *Item, ref string) {
	if item.Name == "" {
		item.Name = strings.TrimSuffix(path.Base(ref), ".json")
	}
	for i := range item.Files {
		if item.Files[i].Type == "" {
			item.Files[i].Type = item.Type
		}
	}
}

func (r *Registry) read(ctx context.Context, ref string) ([]byte, error) {
	switch kindOf(ref) {
	case refURL:
		return r.get(ctx, ref)
	case refS3:
		return r.getS3(ctx, ref)
	case refFile:
		data, err := os.ReadFile(ref)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("E143").
					WithPath(ref).
					WithDetail("Registry item file '" + ref + "' does not exist")
			}
			return nil, errors.New("E144").WithOp("read").WithPath(ref).Wrap(err)
		}
		return data, nil
	default:
		return r.get(ctx, r.ItemURL(ref))
	}
}

// get downloads a registry document over HTTP.
func (r *Registry) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.New("E144").WithPath(rawURL).Wrap(err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.New("E144").
			WithPath(rawURL).
			WithDetail("Could not connect to registry: " + err.Error()).
			WithSuggestion("Check your internet connection").
			Wrap(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New("E143").
			WithPath(rawURL).
			WithDetail("The registry has no document at " + rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New("E144").
			WithPath(rawURL).
			WithDetail(fmt.Sprintf("Registry returned status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New("E144").WithOp("read").WithPath(rawURL).Wrap(err)
	}
	return data, nil
}

// ResolveTree fetches the referenced items and, transitively, their
// registry dependencies. Items are returned dependencies first; ties are
// broken by reference so the order is stable across runs.
func (r *Registry) ResolveTree(ctx context.Context, refs []string) ([]*Item, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	items := make(map[string]*Item)

	var visit func(ref string) error
	visit = func(ref string) error {
		if _, ok := items[ref]; ok {
			return nil
		}

		item, err := r.FetchItem(ctx, ref)
		if err != nil {
			return err
		}
		items[ref] = item

		if err := g.AddVertex(ref); err != nil && !stderrors.Is(err, graph.ErrVertexAlreadyExists) {
			return err
		}

		for _, dep := range item.RegistryDependencies {
			if err := visit(dep); err != nil {
				return err
			}
			if err := g.AddEdge(dep, ref); err != nil {
				switch {
				case stderrors.Is(err, graph.ErrEdgeAlreadyExists):
				case stderrors.Is(err, graph.ErrEdgeCreatesCycle):
					return errors.New("E146").
						WithDetail(fmt.Sprintf("%q and %q depend on each other", ref, dep))
				default:
					return err
				}
			}
		}
		return nil
	}

	for _, ref := range refs {
		if err := visit(ref); err != nil {
			return nil, err
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, errors.New("E146").Wrap(err)
	}

	resolved := make([]*Item, 0, len(order))
	for _, ref := range order {
		resolved = append(resolved, items[ref])
	}
	return resolved, nil
}

// BaseColor returns the named base color from the registry, falling back
// to the embedded copy when the registry can't provide it. An empty name
// returns nil.
func (r *Registry) BaseColor(ctx context.Context, name string) (*BaseColor, error) {
	if name == "" {
		return nil, nil
	}

	data, err := r.get(ctx, fmt.Sprintf("%s/colors/%s.json", r.baseURL, name))
	if err != nil {
		if embedded, embedErr := EmbeddedBaseColor(name); embedErr == nil {
			r.logger.Debug("using embedded base color", "name", name, "reason", err)
			return embedded, nil
		}
		return nil, err
	}

	var color BaseColor
	if err := json.Unmarshal(data, &color); err != nil {
		return nil, errors.New("E145").
			WithDetail("Invalid base color '" + name + "': " + err.Error())
	}
	return &color, nil
}
