package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  gemini  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "provider" || fields[0].String != "gemini" {
		t.Fatalf("unexpected provider field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFieldsToleratesNil(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	enriched := WithFields(zap.New(core), zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["foo"]; got != "bar" {
		t.Fatalf("expected field to be bar, got %q", got)
	}

	fallback := WithFields(nil, zap.String("baz", "qux"))
	if fallback == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	fallback.Info("another log")
}

func TestModelFields(t *testing.T) {
	fields := ModelFields(" gemini ", "text-embedding-004", "")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldProvider || fields[0].String != "gemini" {
		t.Fatalf("unexpected provider field: %+v", fields[0])
	}
	if fields[1].Key != FieldModel || fields[1].String != "text-embedding-004" {
		t.Fatalf("unexpected model field: %+v", fields[1])
	}
}

func TestWithModelFieldsAndStrategy(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	enriched := WithStrategy(WithModelFields(zap.New(core), "gemini", "gemini-2.5-flash", "phrases"), "hybrid")
	enriched.Info("test log")

	ctx := observed.All()[0].ContextMap()
	expect := map[string]string{
		FieldProvider: "gemini",
		FieldModel:    "gemini-2.5-flash",
		FieldKind:     "phrases",
		FieldStrategy: "hybrid",
	}
	for key, value := range expect {
		if ctx[key] != value {
			t.Fatalf("expected %s to be %q, got %q", key, value, ctx[key])
		}
	}
}
