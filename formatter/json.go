package formatter

import (
	"encoding/json"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
)

// BuildJSON serializes a match result to its plain JSON body
func BuildJSON(result *tracematcher.MatchResult) []byte {
	b, _ := json.Marshal(result)
	return b
}
