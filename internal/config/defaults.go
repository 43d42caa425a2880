package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Search.FuzzyThreshold == 0 {
		cfg.Search.FuzzyThreshold = 0.6
	}
	if cfg.Search.FuzzyDiscount == 0 {
		cfg.Search.FuzzyDiscount = 0.7
	}
	if cfg.Search.FreeTextDiscount == 0 {
		cfg.Search.FreeTextDiscount = 0.4
	}
	if cfg.Search.SoftDeadlineMs == 0 {
		cfg.Search.SoftDeadlineMs = 3000
	}
	if cfg.Search.DebounceWindowMs == 0 {
		cfg.Search.DebounceWindowMs = 300
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 20
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.IndexYieldBatch == 0 {
		cfg.Search.IndexYieldBatch = 500
	}
	if cfg.Conversation.OverlapThreshold == 0 {
		cfg.Conversation.OverlapThreshold = 0.25
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".json"}
	}
}
