package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
)

const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	LogLevel           logging.Level
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	PprofEnabled       bool
	PprofAddr          string

	DataSource         tournament.Source
	FetchMode          string
	ElementLoadTimeout time.Duration
	BrowserExecPath    string
	BrowserUserAgent   string
	SofascoreAPIURL    string
	SofascoreWebURL    string

	UpstreamBreakerEnabled     bool
	UpstreamBreakerFailures    int
	UpstreamBreakerOpenTimeout time.Duration

	ExportDir   string
	ExportJSON  bool
	ExportExcel bool

	ArchiveEnabled          bool
	DBURL                   string
	DBDisablePreparedBinary bool

	StreamEnabled bool
	RedisURL      string
	StreamPrefix  string
	StreamMaxLen  int64

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", "5m")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := getEnvAsBool("PPROF_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	source, err := tournament.ParseSource(getEnv("DATA_SOURCE", string(tournament.SourceSofascore)))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_SOURCE: %w", err)
	}

	fetchMode := strings.ToLower(strings.TrimSpace(getEnv("FETCH_MODE", FetchModeBrowser)))
	if fetchMode != FetchModeBrowser && fetchMode != FetchModeHTTP {
		return Config{}, fmt.Errorf("invalid FETCH_MODE %q: valid values are %s, %s", fetchMode, FetchModeBrowser, FetchModeHTTP)
	}

	elementLoadTimeout, err := getEnvAsDuration("ELEMENT_LOAD_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	breakerEnabled, err := getEnvAsBool("UPSTREAM_BREAKER_ENABLED", "true")
	if err != nil {
		return Config{}, err
	}
	breakerFailures, err := strconv.Atoi(strings.TrimSpace(getEnv("UPSTREAM_BREAKER_FAILURE_THRESHOLD", "5")))
	if err != nil || breakerFailures < 1 {
		return Config{}, fmt.Errorf("invalid UPSTREAM_BREAKER_FAILURE_THRESHOLD: must be a positive integer")
	}
	breakerOpenTimeout, err := getEnvAsDuration("UPSTREAM_BREAKER_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	exportJSON, err := getEnvAsBool("EXPORT_JSON", "false")
	if err != nil {
		return Config{}, err
	}
	exportExcel, err := getEnvAsBool("EXPORT_EXCEL", "false")
	if err != nil {
		return Config{}, err
	}

	archiveEnabled, err := getEnvAsBool("ARCHIVE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if archiveEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_ENABLED=true")
	}
	dbDisablePreparedBinary, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	if err != nil {
		return Config{}, err
	}

	streamEnabled, err := getEnvAsBool("STREAM_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	redisURL := strings.TrimSpace(getEnv("REDIS_URL", ""))
	if streamEnabled && redisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required when STREAM_ENABLED=true")
	}
	streamMaxLen, err := strconv.ParseInt(strings.TrimSpace(getEnv("STREAM_MAX_LEN", "0")), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse STREAM_MAX_LEN: %w", err)
	}
	if streamMaxLen < 0 {
		return Config{}, fmt.Errorf("STREAM_MAX_LEN must be >= 0")
	}

	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := getEnvAsBool("PYROSCOPE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "fcdata"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		LogLevel:           logLevel,
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:       pprofEnabled,
		PprofAddr:          pprofAddr,

		DataSource:         source,
		FetchMode:          fetchMode,
		ElementLoadTimeout: elementLoadTimeout,
		BrowserExecPath:    strings.TrimSpace(getEnv("BROWSER_EXEC_PATH", "")),
		BrowserUserAgent:   strings.TrimSpace(getEnv("BROWSER_USER_AGENT", "")),
		SofascoreAPIURL:    strings.TrimRight(strings.TrimSpace(getEnv("SOFASCORE_API_BASE_URL", "")), "/"),
		SofascoreWebURL:    strings.TrimRight(strings.TrimSpace(getEnv("SOFASCORE_WEB_BASE_URL", "")), "/"),

		UpstreamBreakerEnabled:     breakerEnabled,
		UpstreamBreakerFailures:    breakerFailures,
		UpstreamBreakerOpenTimeout: breakerOpenTimeout,

		ExportDir:   getEnv("EXPORT_DIR", "."),
		ExportJSON:  exportJSON,
		ExportExcel: exportExcel,

		ArchiveEnabled:          archiveEnabled,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,

		StreamEnabled: streamEnabled,
		RedisURL:      redisURL,
		StreamPrefix:  getEnv("STREAM_PREFIX", "fcdata"),
		StreamMaxLen:  streamMaxLen,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
