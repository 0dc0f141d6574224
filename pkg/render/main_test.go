package render

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestMain(m *testing.M) {
	// Keep debug output of the global logger out of test results
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}
