package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the model provider name.
	FieldProvider = "model_provider"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "model"
	// FieldKind tells embedding models apart from phrase models.
	FieldKind = "model_kind"
	// FieldStrategy is the structured log field key for a matching strategy.
	FieldStrategy = "strategy"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ModelFields describes a remote model. Empty values are skipped.
func ModelFields(provider, model, kind string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
		StringField{Key: FieldKind, Value: kind},
	)
}

// WithModelFields attaches ModelFields to the logger.
func WithModelFields(logger *zap.Logger, provider, model, kind string) *zap.Logger {
	return WithFields(logger, ModelFields(provider, model, kind)...)
}

// WithStrategy attaches the matching strategy name to the logger.
func WithStrategy(logger *zap.Logger, strategy string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldStrategy, Value: strategy})...)
}
