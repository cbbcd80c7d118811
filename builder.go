package goCred

import (
	"errors"

	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/password"
)

// Builder assembles an Engine. Chain the With* methods, then call Build
// exactly once.
type Builder struct {
	config Config

	roles []string

	store     UserStore
	auditSink AuditSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration. Zero-valued hashing and
// token fields fall back to their package defaults during Build.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithUserStore supplies the account persistence backend. Required.
func (b *Builder) WithUserStore(store UserStore) *Builder {
	b.store = store
	return b
}

// WithRoles fixes the closed set of roles accounts may hold. When left
// unset, the set contains only the configured default role.
func (b *Builder) WithRoles(roles []string) *Builder {
	b.roles = roles
	return b
}

// WithAuditSink directs audit events to sink. Without one, events go to
// a NoOpSink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, constructs the hashing and token
// subsystems, and returns the ready Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.store == nil {
		return nil, errors.New("user store required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Account.DefaultRole == "" {
		cfg.Account.DefaultRole = "user"
	}
	if cfg.Reset.TokenSize == 0 {
		cfg.Reset.TokenSize = defaultConfig().Reset.TokenSize
	}
	if cfg.Token.SigningMethod == "" {
		cfg.Token.SigningMethod = jwt.MethodEd25519
	}

	roleNames := b.roles
	if len(roleNames) == 0 {
		roleNames = []string{cfg.Account.DefaultRole}
	}
	roles := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		if name == "" {
			return nil, errors.New("role names must not be empty")
		}
		roles[name] = struct{}{}
	}
	if _, ok := roles[cfg.Account.DefaultRole]; !ok {
		return nil, errors.New("default role is not in the role set")
	}

	hasher, err := password.NewHasher(password.Config{
		Prf:        password.PrfHMACSHA256,
		Iterations: cfg.Password.Iterations,
		SaltLength: cfg.Password.SaltLength,
		KeyLength:  cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := jwt.NewManager(jwt.Config{
		TTL:           cfg.Token.TTL,
		SigningMethod: cfg.Token.SigningMethod,
		PrivateKey:    cfg.Token.PrivateKey,
		PublicKey:     cfg.Token.PublicKey,
		Issuer:        cfg.Token.Issuer,
		Leeway:        cfg.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:  cfg,
		roles:   roles,
		store:   b.store,
		hasher:  hasher,
		tokens:  tokens,
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
	}

	b.built = true

	return engine, nil
}
