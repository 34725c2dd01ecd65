package activitylog

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Logger records successful mutations as an audit trail.
type Logger struct {
	log *zap.Logger
}

// NewLogger creates an activity logger. A nil zap logger disables output.
func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("audit")}
}

// LogActivity writes one audit entry
func (l *Logger) LogActivity(action, entityType, entityID string, details interface{}) {
	if l == nil {
		return
	}
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("entity_type", entityType),
	}
	if entityID != "" {
		fields = append(fields, zap.String("entity_id", entityID))
	}
	if details != nil {
		if jsonBytes, err := json.Marshal(details); err == nil {
			fields = append(fields, zap.ByteString("details", jsonBytes))
		}
	}
	l.log.Info("activity", fields...)
}

func (l *Logger) LogCreate(entityType, entityID string, newData interface{}) {
	l.LogActivity("create", entityType, entityID, map[string]interface{}{
		"new": newData,
	})
}

// LogUpdate logs a full-replace update
func (l *Logger) LogUpdate(entityType, entityID string, newData interface{}) {
	l.LogActivity("update", entityType, entityID, map[string]interface{}{
		"new": newData,
	})
}

func (l *Logger) LogDelete(entityType, entityID string) {
	l.LogActivity("delete", entityType, entityID, nil)
}
