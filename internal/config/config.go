package config

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"

	"github.com/leengari/jsonserver/internal/logging"
)

const (
	defaultDataPath        = "data"
	defaultHost            = "0.0.0.0"
	defaultPort            = 3000
	defaultLogLevel        = "debug"
	defaultServerType      = ServerTypeREST
	defaultMetricsInterval = 15

	envPrefix = "JSONSERVER"
)

// Server types
const (
	ServerTypeREST    = "rest_api"
	ServerTypeGraphQL = "graph_ql"
	ServerTypeAll     = "all"
)

// Config holds the configuration of jsonserver
type Config struct {
	*flag.FlagSet `toml:"-" json:"-"`

	DataPath        string `toml:"data-path" json:"data-path"`
	Host            string `toml:"host" json:"host"`
	Port            int    `toml:"port" json:"port"`
	LogLevel        string `toml:"log-level" json:"log-level"`
	ServerType      string `toml:"server-type" json:"server-type"`
	SeqURL          string `toml:"seq-url" json:"seq-url"`
	Seed            bool   `toml:"seed" json:"seed"`
	Trace           bool   `toml:"trace" json:"trace"`
	MetricsAddr     string `toml:"metrics-addr" json:"metrics-addr"`
	MetricsInterval int    `toml:"metrics-interval" json:"metrics-interval"`

	configFile   string
	printVersion bool
}

// NewConfig creates a Config with its flag set
func NewConfig() *Config {
	cfg := &Config{}
	cfg.FlagSet = flag.NewFlagSet("jsonserver", flag.ContinueOnError)
	fs := cfg.FlagSet
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage of jsonserver:")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.DataPath, "data-path", defaultDataPath, "directory holding the *.json table files")
	fs.StringVar(&cfg.Host, "host", defaultHost, "host to listen on")
	fs.IntVar(&cfg.Port, "port", defaultPort, "port to listen on")
	fs.StringVar(&cfg.LogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.ServerType, "server-type", defaultServerType, "interfaces to serve: rest_api, graph_ql or all")
	fs.StringVar(&cfg.SeqURL, "seq-url", "", "Seq ingestion URL, e.g. http://localhost:5341 (empty disables Seq)")
	fs.BoolVar(&cfg.Seed, "seed", false, "write demo tables when the data directory holds none")
	fs.BoolVar(&cfg.Trace, "trace", false, "log an OpenTelemetry span for every operation")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Prometheus Pushgateway address (empty disables pushing)")
	fs.IntVar(&cfg.MetricsInterval, "metrics-interval", defaultMetricsInterval, "seconds between metric pushes")
	fs.StringVar(&cfg.configFile, "config", "", "path to the configuration file")
	fs.BoolVar(&cfg.printVersion, "version", false, "print version info")

	return cfg
}

// Parse parses all config from command-line flags, environment vars or the configuration file.
// It returns flag.ErrHelp when -h was given.
func (cfg *Config) Parse(args []string) error {
	// parse first to get config file
	if err := cfg.FlagSet.Parse(args); err != nil {
		return err
	}
	if cfg.printVersion {
		return nil
	}

	// load config file if specified
	if cfg.configFile != "" {
		if err := cfg.configFromFile(cfg.configFile); err != nil {
			return errors.Trace(err)
		}
	}
	// parse again to replace with command line options
	if err := cfg.FlagSet.Parse(args); err != nil {
		return errors.Trace(err)
	}
	if len(cfg.FlagSet.Args()) > 0 {
		return errors.Errorf("'%s' is not a valid flag", cfg.FlagSet.Arg(0))
	}
	// replace with environment vars
	if err := setFlagsFromEnv(envPrefix, cfg.FlagSet); err != nil {
		return errors.Trace(err)
	}

	adjustString(&cfg.DataPath, defaultDataPath)
	adjustString(&cfg.Host, defaultHost)
	adjustInt(&cfg.Port, defaultPort)
	adjustString(&cfg.LogLevel, defaultLogLevel)
	adjustString(&cfg.ServerType, defaultServerType)
	adjustInt(&cfg.MetricsInterval, defaultMetricsInterval)

	return cfg.validate()
}

// PrintVersion reports whether -version was given
func (cfg *Config) PrintVersion() bool {
	return cfg.printVersion
}

// Addr returns the host:port to listen on
func (cfg *Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// ServesREST reports whether the resource interface is enabled
func (cfg *Config) ServesREST() bool {
	return cfg.ServerType == ServerTypeREST || cfg.ServerType == ServerTypeAll
}

// ServesGraphQL reports whether the GraphQL interface is enabled
func (cfg *Config) ServesGraphQL() bool {
	return cfg.ServerType == ServerTypeGraphQL || cfg.ServerType == ServerTypeAll
}

func (cfg *Config) configFromFile(path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return errors.Trace(err)
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}

func adjustInt(v *int, defValue int) {
	if *v == 0 {
		*v = defValue
	}
}

func (cfg *Config) validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.Errorf("invalid port %d, must be in [1, 65535]", cfg.Port)
	}
	if _, _, err := net.SplitHostPort(cfg.Addr()); err != nil {
		return errors.Errorf("bad listen address %s, %v", cfg.Addr(), err)
	}

	switch cfg.ServerType {
	case ServerTypeREST, ServerTypeGraphQL, ServerTypeAll:
	default:
		return errors.Errorf("invalid server-type %q, must be one of %s, %s, %s",
			cfg.ServerType, ServerTypeREST, ServerTypeGraphQL, ServerTypeAll)
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Annotate(err, "invalid log-level")
	}

	if cfg.SeqURL != "" {
		if u, err := url.Parse(cfg.SeqURL); err != nil || u.Host == "" {
			return errors.Errorf("parse SeqURL error: %s", cfg.SeqURL)
		}
	}

	if cfg.MetricsInterval < 0 {
		return errors.Errorf("invalid metrics-interval %d", cfg.MetricsInterval)
	}

	info, err := os.Stat(cfg.DataPath)
	switch {
	case err == nil && !info.IsDir():
		return errors.Errorf("data-path %s is not a directory", cfg.DataPath)
	case err != nil && !os.IsNotExist(err):
		return errors.Annotatef(err, "data-path %s", cfg.DataPath)
	case err != nil && !cfg.Seed:
		return errors.Errorf("data-path %s does not exist", cfg.DataPath)
	}
	return nil
}
