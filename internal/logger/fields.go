package logger

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldFile      = "resume_file"
	FieldFormat    = "resume_format"
	FieldIndex     = "resume_index"
	FieldRequestID = "request_id"
)

// ForProvider tags every entry with the chat provider and model.
func ForProvider(log *zap.Logger, provider, model string) *zap.Logger {
	return with(log,
		nonEmpty(FieldProvider, provider),
		nonEmpty(FieldModel, model),
	)
}

// ForResume tags every entry with one resume of a batch: its 1-based
// position, its name and the lower-cased extension without the dot.
// Index 0 means the resume is not part of a batch.
func ForResume(log *zap.Logger, index int, name string) *zap.Logger {
	name = strings.TrimSpace(name)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	indexField := zap.Skip()
	if index > 0 {
		indexField = zap.Int(FieldIndex, index)
	}

	return with(log,
		indexField,
		nonEmpty(FieldFile, name),
		nonEmpty(FieldFormat, format),
	)
}

// RequestID is the field shared by the web middleware and handlers.
func RequestID(id string) zap.Field {
	return nonEmpty(FieldRequestID, id)
}

// nonEmpty drops blank values instead of logging empty strings.
func nonEmpty(key, value string) zap.Field {
	value = strings.TrimSpace(value)
	if value == "" {
		return zap.Skip()
	}
	return zap.String(key, value)
}

func with(log *zap.Logger, fields ...zap.Field) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log.With(fields...)
}
