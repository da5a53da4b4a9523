// Package sdk exposes a Halcyon node's REST API as strongly-typed
// repositories composed by a RepositoryFactory.
//
// The factory owns the single endpoint configuration and the shared network
// identity (network type and generation hash). Identity values are resolved
// lazily, at most once per factory, and replayed to every repository and
// caller — including repositories created before resolution completed.
//
// Example:
//
//	factory, err := sdk.NewRepositoryFactory("http://node:3000")
//	if err != nil {
//	    return err
//	}
//
//	accounts := factory.CreateAccountRepository()
//	info, err := accounts.GetAccountInfo(ctx, addr)
package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/halcyon-ledger/halcyon-go/pkg/listener"
	"github.com/halcyon-ledger/halcyon-go/pkg/log"
	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

const defaultHTTPTimeout = 30 * time.Second

type factoryConfig struct {
	Endpoint string `validate:"required,url"`

	networkType    *model.NetworkType
	generationHash string
	wsURL          string
	httpClient     *http.Client
	logger         log.Logger
	metrics        *Metrics
	wsDialer       *websocket.Dialer
}

// Option adjusts factory construction.
type Option func(*factoryConfig)

// WithNetworkType supplies the network type explicitly, bypassing resolution:
// the factory will never call the network identity endpoint.
func WithNetworkType(n model.NetworkType) Option {
	return func(c *factoryConfig) { c.networkType = &n }
}

// WithGenerationHash supplies the generation hash explicitly, bypassing
// resolution: the factory will never call the node info endpoint for it.
func WithGenerationHash(hash string) Option {
	return func(c *factoryConfig) { c.generationHash = hash }
}

// WithWebsocketURL overrides the push channel URL derived from the endpoint.
func WithWebsocketURL(wsURL string) Option {
	return func(c *factoryConfig) { c.wsURL = wsURL }
}

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(client *http.Client) Option {
	return func(c *factoryConfig) { c.httpClient = client }
}

// WithLogger attaches a logger. Defaults to a noop logger.
func WithLogger(lg log.Logger) Option {
	return func(c *factoryConfig) { c.logger = lg }
}

// WithMetrics records node call counts and latencies on the given instruments.
func WithMetrics(m *Metrics) Option {
	return func(c *factoryConfig) { c.metrics = m }
}

// WithListenerDialer injects the push channel transport handed to listeners
// created by this factory.
func WithListenerDialer(d *websocket.Dialer) Option {
	return func(c *factoryConfig) { c.wsDialer = d }
}

// RepositoryFactory builds per-resource repositories bound to one node
// endpoint and one shared network identity. Repositories are stateless beyond
// that shared identity; calls from different repositories of the same factory
// may run concurrently.
type RepositoryFactory struct {
	exec     *executor
	lg       log.Logger
	wsURL    string
	wsDialer *websocket.Dialer

	networkType    *lazy[model.NetworkType]
	generationHash *lazy[string]
}

// NewRepositoryFactory validates the endpoint URL and builds a factory.
// Options may pre-supply identity values, override the push channel URL, or
// inject transports.
func NewRepositoryFactory(endpoint string, opts ...Option) (*RepositoryFactory, error) {
	cfg := factoryConfig{Endpoint: endpoint}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	base, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL %q: %w", cfg.Endpoint, err)
	}

	lg := cfg.logger
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	lg = lg.WithName("halcyon-sdk")

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	f := &RepositoryFactory{
		exec: &executor{
			base:    base,
			client:  client,
			lg:      lg,
			metrics: cfg.metrics,
		},
		lg:       lg,
		wsURL:    cfg.wsURL,
		wsDialer: cfg.wsDialer,
	}
	if f.wsURL == "" {
		f.wsURL = deriveWebsocketURL(base)
	}

	if cfg.networkType != nil {
		f.networkType = newResolvedLazy(*cfg.networkType)
	} else {
		f.networkType = newLazy(func(ctx context.Context) (model.NetworkType, error) {
			n, err := f.CreateNetworkRepository().GetNetworkType(ctx)
			if err != nil {
				return 0, fmt.Errorf("%w: %w", ErrResolution, err)
			}
			f.lg.Debug("resolved network type", "networkType", n)
			return n, nil
		})
	}

	if cfg.generationHash != "" {
		f.generationHash = newResolvedLazy(cfg.generationHash)
	} else {
		f.generationHash = newLazy(func(ctx context.Context) (string, error) {
			info, err := f.CreateNodeRepository().GetNodeInfo(ctx)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrResolution, err)
			}
			f.lg.Debug("resolved generation hash", "generationHash", info.GenerationHash)
			return info.GenerationHash, nil
		})
	}

	return f, nil
}

// NetworkType returns the network type the factory is bound to, resolving it
// on first demand. Concurrent callers share one underlying fetch; once the
// fetch fails, the same failure is replayed to every later call for the
// factory's lifetime.
func (f *RepositoryFactory) NetworkType(ctx context.Context) (model.NetworkType, error) {
	return f.networkType.get(ctx)
}

// GenerationHash returns the generation hash of the ledger instance the node
// serves. Resolution semantics match NetworkType.
func (f *RepositoryFactory) GenerationHash(ctx context.Context) (string, error) {
	return f.generationHash.get(ctx)
}

// CreateAccountRepository returns a client for the account resource.
func (f *RepositoryFactory) CreateAccountRepository() AccountRepository {
	return &httpAccountRepository{exec: f.exec}
}

// CreateBlockRepository returns a client for the block resource.
func (f *RepositoryFactory) CreateBlockRepository() BlockRepository {
	return &httpBlockRepository{exec: f.exec}
}

// CreateChainRepository returns a client for the chain resource.
func (f *RepositoryFactory) CreateChainRepository() ChainRepository {
	return &httpChainRepository{exec: f.exec}
}

// CreateNamespaceRepository returns a client for the namespace resource.
func (f *RepositoryFactory) CreateNamespaceRepository() NamespaceRepository {
	return &httpNamespaceRepository{exec: f.exec}
}

// CreateNetworkRepository returns a client for the network resource.
func (f *RepositoryFactory) CreateNetworkRepository() NetworkRepository {
	return &httpNetworkRepository{exec: f.exec}
}

// CreateNodeRepository returns a client for the node resource.
func (f *RepositoryFactory) CreateNodeRepository() NodeRepository {
	return &httpNodeRepository{exec: f.exec}
}

// CreateTokenRepository returns a client for the token resource.
func (f *RepositoryFactory) CreateTokenRepository() TokenRepository {
	return &httpTokenRepository{exec: f.exec}
}

// CreateListener returns a push channel client bound to the factory's
// websocket URL (derived from the HTTP endpoint unless overridden) and, when
// injected, the factory's listener transport.
func (f *RepositoryFactory) CreateListener() *listener.Listener {
	return listener.New(listener.Config{
		URL:    f.wsURL,
		Dialer: f.wsDialer,
		Logger: f.lg,
	})
}

// deriveWebsocketURL maps the HTTP endpoint onto the push channel: same host,
// ws scheme, "/ws" path.
func deriveWebsocketURL(base *url.URL) string {
	ws := *base
	switch base.Scheme {
	case "https":
		ws.Scheme = "wss"
	default:
		ws.Scheme = "ws"
	}
	ws.Path = "/ws"
	return ws.String()
}
