package config

import (
	"reflect"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, gzip.DefaultCompression, cfg.Compression.Level)
	require.True(t, cfg.Compression.FlushEveryWrite)
	require.Equal(t, 1024, cfg.Stream.ChunkSize)
	require.Equal(t, 200, cfg.Policy.SmallBody)
	require.Equal(t, int64(1048576), cfg.Policy.MaterializeBelow)
	require.True(t, cfg.Policy.Vary)
}

// every knob must carry an explicit default, otherwise a zero value silently
// disables the feature it controls
func TestNoZeroFields(t *testing.T) {
	for _, field := range zeroFields(reflect.ValueOf(*Default()), "Config") {
		assert.Fail(t, "zero-value field", field)
	}
}

func zeroFields(value reflect.Value, path string) (fields []string) {
	if value.Kind() != reflect.Struct {
		if value.IsZero() {
			return []string{path}
		}

		return nil
	}

	for i := range value.NumField() {
		name := path + "." + value.Type().Field(i).Name
		fields = append(fields, zeroFields(value.Field(i), name)...)
	}

	return fields
}
