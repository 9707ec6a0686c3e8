package invocation

import (
	"os"
	"path/filepath"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/infra/buildinfo"
	"github.com/yndnr/zombienet-go/internal/network/config"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
)

// Resolver turns raw arguments into invocation descriptors.
type Resolver struct {
	workDir    func() (string, error)
	findCreds  func(name string) string
	loadConfig func(path string) (*config.NetworkConfig, error)
	log        logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWorkDir sets the directory relative config paths are resolved against.
func WithWorkDir(dir string) Option {
	return func(r *Resolver) {
		r.workDir = func() (string, error) { return dir, nil }
	}
}

// WithCredsLookup replaces config.CredsFilePath.
func WithCredsLookup(fn func(name string) string) Option {
	return func(r *Resolver) {
		r.findCreds = fn
	}
}

// WithConfigLoader replaces config.Load.
func WithConfigLoader(fn func(path string) (*config.NetworkConfig, error)) Option {
	return func(r *Resolver) {
		r.loadConfig = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver creates a resolver backed by the process working directory
// and the default creds locations.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		workDir:    os.Getwd,
		findCreds:  config.CredsFilePath,
		loadConfig: config.Load,
		log:        logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveSpawn validates the arguments of `spawn`.
//
// A provider option outside the allow-list is ignored, as is an empty one;
// the config keeps whatever provider it declares. Creds are only resolved
// when the effective provider is kubernetes.
func (r *Resolver) ResolveSpawn(configFile, credsFile, monitorArg, providerOpt string) (*SpawnInvocation, error) {
	if configFile == "" {
		return nil, domain.ErrMissingArgument.WithDetails("networkConfig")
	}

	configPath, err := r.abs(configFile)
	if err != nil {
		return nil, domain.ErrConfigNotFound.WithDetails(configFile).WithCause(err)
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, domain.ErrConfigNotFound.WithDetails(configPath)
	}

	cfg, err := r.loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	r.log.Debug("network config loaded", "path", configPath, "provider", cfg.Provider())

	if domain.IsAvailableProvider(providerOpt) {
		cfg.SetProvider(providerOpt)
	} else if providerOpt != "" {
		r.log.Debug("ignoring provider option", "provider", providerOpt,
			"error", domain.ErrUnknownProvider.WithDetails(providerOpt))
	}

	inv := &SpawnInvocation{
		ConfigPath: configPath,
		Monitor:    monitorArg != "",
		Config:     cfg,
	}

	if domain.NeedsCreds(cfg.Provider()) {
		name := credsFile
		if name == "" {
			name = config.DefaultCredsName
		}
		inv.CredsPath = r.findCreds(name)
		if inv.CredsPath == "" {
			return nil, domain.ErrCredsNotFound.WithDetails(credsFile)
		}
		r.log.Debug("creds resolved", "creds", inv.CredsPath)
	}

	return inv, nil
}

// ResolveTest validates the arguments of `test`. The effective provider is
// providerOpt when allowed, otherwise the default provider.
func (r *Resolver) ResolveTest(testFile, providerOpt string) (*TestInvocation, error) {
	if testFile == "" {
		return nil, domain.ErrMissingArgument.WithDetails("testFile")
	}

	provider := domain.DefaultProvider
	if domain.IsAvailableProvider(providerOpt) {
		provider = providerOpt
	}
	return &TestInvocation{TestFile: testFile, Provider: provider}, nil
}

// ResolveVersion returns the fixed release version.
func (r *Resolver) ResolveVersion() *VersionInvocation {
	return &VersionInvocation{Version: buildinfo.Version}
}

func (r *Resolver) abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := r.workDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}
