package container

import (
	"fmt"
	"time"

	"github.com/samber/do"
)

// Click sinks selectable with --click-sink.
const (
	ClickSinkDirect = "direct"
	ClickSinkStream = "stream"
)

// Options is populated by humacli from flags and SERVICE_* environment variables.
type Options struct {
	Port        int    `default:"8888"    help:"Port to listen on"                               short:"p"`
	DatabaseURL string `help:"PostgreSQL connection URL (required)"                               short:"d"`
	RedisAddr   string `help:"Redis address, empty disables the cache and the stream sink"         short:"r"`
	AdminKey    string `help:"Shared secret for the admin listing"`
	CodeLength  int    `default:"7"       help:"Length of generated short codes"                 short:"c"`
	ClickSink   string `default:"direct"  help:"Where clicks are recorded: direct or stream"`
	CacheTTL    int    `default:"3600"    help:"Redis cache TTL in seconds"`
	LogFormat   string `default:"console" help:"Log format: console or json"`
	Migrate     bool   `default:"true"    help:"Run database migrations on startup"`
}

// Validate checks option combinations that cannot work.
func (o *Options) Validate() error {
	if o.DatabaseURL == "" {
		return fmt.Errorf("database-url is required")
	}

	switch o.ClickSink {
	case ClickSinkDirect:
	case ClickSinkStream:
		if o.RedisAddr == "" {
			return fmt.Errorf("click-sink %q requires redis-addr", o.ClickSink)
		}
	default:
		return fmt.Errorf("unknown click-sink %q", o.ClickSink)
	}

	return nil
}

func (o *Options) cacheTTL() time.Duration {
	return time.Duration(o.CacheTTL) * time.Second
}

// RegisterServer registers everything cmd/server needs.
func RegisterServer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	PostgresPackage(injector)
	RedisPackage(injector)
	RepositoryPackage(injector)
	MessagingPackage(injector)
	ShortenerPackage(injector)
	HTTPPackage(injector)
}

// RegisterConsumer registers everything cmd/consumer needs.
func RegisterConsumer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	PostgresPackage(injector)
	RedisPackage(injector)
	RepositoryPackage(injector)
	MessagingPackage(injector)
	ConsumerPackage(injector)
}
