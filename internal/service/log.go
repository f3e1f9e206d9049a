package service

import (
	"encoding/json"
	"log"
	"time"
)

// logWarn emits one JSON line for non-fatal side-channel failures (cache
// reads and writes). The request itself proceeds against the database.
func logWarn(event string, err error, fields map[string]any) {
	data := map[string]any{
		"ts":            time.Now().UTC().Format(time.RFC3339Nano),
		"level":         "warn",
		"component":     "service",
		"event":         event,
		"error_message": err.Error(),
	}
	for k, v := range fields {
		data[k] = v
	}

	b, mErr := json.Marshal(data)
	if mErr != nil {
		log.Printf("failed to marshal service log: %v", mErr)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
