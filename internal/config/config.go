package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Strings are used for identifiers, secrets and
// path segments, ints for durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign access tokens
    AccessTTLHours int    // access token time‑to‑live in hours
    BcryptCost     int    // bcrypt cost for password hashing

    BaseURL     string // public base URL used to build asset links
    UploadsPath string // URL path segment under which uploads are served
    AssetsPath  string // URL path segment under which static assets are served
    UploadsDir  string // local directory holding uploaded images
    AssetsDir   string // local directory holding bundled assets

    StorageDriver string // asset storage backend: "local" or "s3"
    S3Region      string // S3 region (s3 driver only)
    S3Bucket      string // S3 bucket holding uploads (s3 driver only)
    S3Endpoint    string // S3 endpoint, e.g. a MinIO address (s3 driver only)
    S3AccessKey   string // S3 access key id (s3 driver only)
    S3SecretKey   string // S3 secret access key (s3 driver only)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Serving paths and
// the token TTL fall back to the defaults the API was designed around.
func Load() Config {
    cfg := Config{
        Env:            getenv("APP_ENV", "dev"),
        Port:           getenv("APP_PORT", "8000"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("ACCESS_TOKEN_SECRET"),
        AccessTTLHours: envInt("ACCESS_TOKEN_TTL_HOURS", 72),
        BcryptCost:     envInt("BCRYPT_COST", 10),
        BaseURL:        must("BASE_URL"),
        UploadsPath:    getenv("UPLOADS_PATH", "uploads"),
        AssetsPath:     getenv("ASSETS_PATH", "assets"),
        UploadsDir:     getenv("UPLOADS_DIR", "./uploads"),
        AssetsDir:      getenv("ASSETS_DIR", "./assets"),
        StorageDriver:  getenv("STORAGE_DRIVER", "local"),
    }
    if cfg.StorageDriver == "s3" {
        cfg.S3Region = must("S3_REGION")
        cfg.S3Bucket = must("S3_BUCKET")
        cfg.S3Endpoint = must("S3_ENDPOINT")
        cfg.S3AccessKey = must("S3_ACCESS_KEY")
        cfg.S3SecretKey = must("S3_SECRET_KEY")
    }
    return cfg
}

// UploadURL builds the public URL of a stored upload from the configured
// base URL and uploads path segment.
func (c Config) UploadURL(filename string) string {
    return c.BaseURL + "/" + c.UploadsPath + "/" + filename
}

// PlaceholderImageURL returns the fixed asset substituted whenever a story
// would otherwise be left without a renderable image.
func (c Config) PlaceholderImageURL() string {
    return c.BaseURL + "/" + c.AssetsPath + "/placeholder.jpg"
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// envInt reads an integer environment variable.  Unset falls back to def;
// a value that is present but not numeric is a fatal configuration error.
func envInt(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
