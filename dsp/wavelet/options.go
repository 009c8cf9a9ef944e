package wavelet

// Option configures a transform call.
type Option func(*config)

type config struct {
	engine Engine
}

func defaultConfig() config {
	return config{engine: EngineDirect}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEngine selects the filtering engine. The default is EngineDirect.
func WithEngine(e Engine) Option {
	return func(cfg *config) {
		cfg.engine = e
	}
}
