package matchd

import "go.uber.org/zap"

// clientConfig collects the options applied by New.
type clientConfig struct {
	addrs        []string
	username     string
	password     string
	keyPrefix    string
	partnerLimit int
	postLimit    int
	logger       *zap.Logger
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// WithRedis sets the Redis addresses to connect to.
func WithRedis(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) { c.addrs = addrs })
}

// WithAuth sets database credentials.
func WithAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithKeyPrefix overrides the key namespace (default "matchd:").
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) { c.keyPrefix = prefix })
}

// WithPartnerLimit overrides the maximum partner matches returned.
func WithPartnerLimit(n int) Option {
	return optionFunc(func(c *clientConfig) { c.partnerLimit = n })
}

// WithPostLimit overrides the maximum recommended posts returned.
func WithPostLimit(n int) Option {
	return optionFunc(func(c *clientConfig) { c.postLimit = n })
}

// WithLogger sets the logger used by the client. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = l })
}
