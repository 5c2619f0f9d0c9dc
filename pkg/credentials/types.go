package credentials

// Credentials is one named (base URL, access token) pair.
type Credentials struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Config is the on-disk document. Active is nil or a key of Credentials.
type Config struct {
	Active      *string                `json:"active"`
	Credentials map[string]Credentials `json:"credentials"`
}

// Active pairs the active name with its credentials.
type Active struct {
	Name        string      `json:"name"`
	Credentials Credentials `json:"credentials"`
}

// NewConfig returns the empty document: no active set, no credentials.
func NewConfig() *Config {
	return &Config{
		Credentials: make(map[string]Credentials),
	}
}
