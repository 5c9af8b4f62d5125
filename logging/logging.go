// Package logging writes one JSON object per line through the standard logger.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

// Service is stamped on every line
var Service = "go-shop"

// Levels
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

type Fields struct {
	Level      string `json:"level,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	OrderID    string `json:"order_id,omitempty"`
	TaskID     string `json:"task_id,omitempty"`
	Step       string `json:"step,omitempty"`
	Status     string `json:"status,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	Code       int    `json:"code,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

type line struct {
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Fields
}

func Log(fields Fields) {
	if fields.Level == "" {
		fields.Level = LevelInfo
	}
	data, err := json.Marshal(line{
		Service:   Service,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Fields:    fields,
	})
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", Service, err.Error())
		return
	}
	log.Print(string(data))
}

// Warn logs fields at warn level with err attached
func Warn(fields Fields, err error) {
	fields.Level = LevelWarn
	if err != nil {
		fields.Error = err.Error()
	}
	Log(fields)
}

// Error logs fields at error level with err attached
func Error(fields Fields, err error) {
	fields.Level = LevelError
	if err != nil {
		fields.Error = err.Error()
	}
	Log(fields)
}
