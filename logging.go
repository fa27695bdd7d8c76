package tracematcher

import (
	"log"
	"os"
)

// InitLogging configures the process-wide logger the pipeline logs
// strategy transitions and batch failures through.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
