package fs

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
)

// LoadQuestions reads the suggested chat questions from a JSON array of
// strings. A missing or malformed file is logged and yields no suggestions.
func LoadQuestions(path string, logger *slog.Logger) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("suggested questions unavailable", "path", path, "error", err)
		return nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Error("suggested questions malformed", "path", path, "error", err)
		return nil
	}

	questions := make([]string, 0, len(raw))
	for _, q := range raw {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}
