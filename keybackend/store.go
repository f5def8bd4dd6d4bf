package keybackend

// SecretConfig holds configuration for locating the shared secret.
type SecretConfig struct {
	Secret string `mapstructure:"secret"`      // Inline secret from config
	File   string `mapstructure:"secret_file"` // Path to a file containing the secret
}

// ResolveSecret returns the shared secret described by cfg.
// The file takes precedence over the inline value when both are set.
func ResolveSecret(cfg SecretConfig) (string, error) {
	if cfg.File != "" {
		return LoadSecretFromFile(cfg.File)
	}

	if cfg.Secret == "" {
		return "", ErrEmptySecret
	}

	return cfg.Secret, nil
}
