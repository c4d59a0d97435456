package common

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	ProjectID string

	Env string

	// Production flag indicating if app is running the production backend
	Production bool

	// IsLocalhost flag indicating if app is running on localhost
	IsLocalhost bool

	GAEService string

	GAEVersion string

	// APIKey is the shared secret required on the X-Api-Key header of
	// client-facing endpoints. Empty means development mode: all requests
	// are accepted.
	APIKey string

	// RevenueCatWebhookSecret signs webhook deliveries. Empty means
	// development mode: signature checks are skipped.
	RevenueCatWebhookSecret string

	// FreeTierWeeklyMessageLimit is the number of chat messages a free
	// user may send per rolling week.
	FreeTierWeeklyMessageLimit int
)

const (
	productionProject = "dumplin-prod"

	TestProjectID = "dumplin-dev"

	defaultWeeklyMessageLimit = 20

	// ProEntitlement is the entitlement tag granting unlimited chat access.
	ProEntitlement = "pro"
)

func initEnvVariables() {
	IsLocalhost = gin.Mode() != gin.ReleaseMode

	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", "")
	if ProjectID == "" {
		if !IsLocalhost {
			log.Fatalln("environment variable GOOGLE_CLOUD_PROJECT is not set")
		}

		ProjectID = TestProjectID
	}

	GAEService = GetEnv("GAE_SERVICE", "dumplin-api")
	GAEVersion = GetEnv("GAE_VERSION", "localhost")

	if value := os.Getenv("FIRESTORE_EMULATOR_HOST"); value != "" {
		log.Printf("Using Firestore Emulator: %s", value)
	}

	APIKey = os.Getenv("API_KEY")
	RevenueCatWebhookSecret = os.Getenv("REVENUECAT_WEBHOOK_SECRET")

	FreeTierWeeklyMessageLimit = defaultWeeklyMessageLimit
	if value := os.Getenv("FREE_TIER_WEEKLY_MESSAGE_LIMIT"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit <= 0 {
			log.Fatalf("invalid FREE_TIER_WEEKLY_MESSAGE_LIMIT: %q", value)
		}

		FreeTierWeeklyMessageLimit = limit
	}

	if ProjectID == productionProject {
		Env = "production"
		Production = true
	} else {
		Env = "development"
		Production = false
	}
}

func init() {
	initEnvVariables()
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
