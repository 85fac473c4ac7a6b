package core

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// SeedEnv is the environment variable holding a fixed random seed.
const SeedEnv = "LSHGRID_SEED"

// SeedFromEnv parses LSHGRID_SEED, ignoring surrounding blanks. ok is false
// unless the variable holds a base-10 int64.
func SeedFromEnv() (seed int64, ok bool) {
	raw := strings.TrimSpace(os.Getenv(SeedEnv))
	if raw == "" {
		return 0, false
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn().Err(err).Msgf("Ignoring malformed %s %q", SeedEnv, raw)
		return 0, false
	}
	return seed, true
}

// GetSeed returns the seed of SeedFromEnv, or the current time in
// nanoseconds when the environment holds none.
func GetSeed() int64 {
	if seed, ok := SeedFromEnv(); ok {
		log.Info().Msgf("Using seed %d from %s", seed, SeedEnv)
		return seed
	}
	seed := time.Now().UnixNano()
	log.Info().Msgf("Using current time as seed: %d", seed)
	return seed
}
