package common

import (
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
)

var Version = "v0.1.0"
var SystemName = "Study Hub"

var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	LogDir        = flag.String("log-dir", "", "specify the log directory")
)

// SessionSecret defaults to a random value so a fresh deployment is never
// running with a well-known secret. Overridden by config file or env.
var SessionSecret = uuid.New().String()

var SQLitePath = "data/study-hub.db"

var (
	JWTSecret          = ""
	JWTRefreshSecret   = ""
	JWTExpiry          = 24 * time.Hour
	JWTRefreshExpiry   = 7 * 24 * time.Hour
	SessionCookieName  = "session"
	PasswordBcryptCost = 10
)

var (
	RedisEnabled   = false
	RedisConnStr   = os.Getenv("REDIS_CONN_STRING")
	RateLimitRPM   = 120 // per-IP requests per minute on /api
	CriticalLimit  = 20  // per-IP requests per minute on auth endpoints
	ItemsPerPage   = 10
	MessagePageCap = 50 // group chat history returned per request
)

// Blob storage (S3 / MinIO compatible).
var (
	S3Enabled      = false
	S3Region       = "us-east-1"
	S3Bucket       = "study-hub"
	S3AccessKey    = ""
	S3SecretKey    = ""
	S3BaseEndpoint = ""
	S3URLExpiry    = 15 * time.Minute
)

// Completion service (OpenAI compatible).
var (
	OpenAIAPIKey  = os.Getenv("OPENAI_API_KEY")
	OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	OpenAIModel   = "gpt-4.1-nano"
)

func PrintHelp() {
	println(SystemName + " " + Version)
	println("Usage: study-hub [--port <port>] [--log-dir <log dir>] [--version] [--help]")
}
