package pepper

// Prefix is the configuration key prefix shared by all pepper settings.
const Prefix = "PEPPER_"

// Config is the normalized, immutable view of pepper-related configuration.
// Parsing is generic (the config builder fills it); semantic validation
// happens in [Build].
type Config struct {
	Enabled bool   `config:"enabled" default:"true"`
	Mode    string `config:"mode" default:"noop"`

	// Secret is the generic fallback used when mode-specific values
	// (prefix, suffix, interleave token) are absent.
	Secret string `config:"secret" default:""`

	PrefixValue string `config:"prefix" default:""`
	SuffixValue string `config:"suffix" default:""`

	InterleaveFreq  int    `config:"interleave_freq" default:"0"`
	InterleaveToken string `config:"interleave_token" default:""`

	HMACKey  string `config:"hmac_key" default:""`
	HMACAlgo string `config:"hmac_algo" default:"sha256"`
}
