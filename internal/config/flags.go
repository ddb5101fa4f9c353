package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres://…, memory://, or SQLite path for the agent)
//	-c/-config json file path with configs
//	-token-sign-key token verification key
//	-token-issuer expected token issuer
//	-token bearer token used by the sync agent
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-categories category sync mode: off, pull or full
//	-pull-overlap pull watermark lookback (e.g., "2s")
//	-hard-delete delete transaction rows instead of writing tombstones
//	-server sync server address used by the agent
//	-sync-interval agent sync period (e.g., "1m")
//	-log-file agent log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("finance-tracker", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var token string
	var requestTimeout time.Duration
	var syncCategories string
	var pullOverlap time.Duration
	var hardDelete bool
	var adapterAddress string
	var syncInterval time.Duration
	var logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token verification key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Expected token issuer")
	fs.StringVar(&token, "token", "", "Bearer token of the sync agent")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&syncCategories, "sync-categories", "", "Category sync mode: off, pull or full")
	fs.DurationVar(&pullOverlap, "pull-overlap", 0, "Pull watermark lookback (e.g., 2s)")
	fs.BoolVar(&hardDelete, "hard-delete", false, "Delete transaction rows instead of writing tombstones")
	fs.StringVar(&adapterAddress, "server", "", "Sync server address")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync agent period (e.g., 1m)")
	fs.StringVar(&logFile, "log-file", "", "Sync agent log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			Token:        token,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Categories:  CategorySyncMode(syncCategories),
			PullOverlap: pullOverlap,
		},
		Ledger: Ledger{
			HardDelete: hardDelete,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		Log: Log{
			File: logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
