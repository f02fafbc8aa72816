package slgr

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
line_ending = "\r\n"

[[outputs]]
name  = "serial"
level = "verbose"

[[outputs]]
name       = "sdcard"
level      = "warning"
date       = false

[[outputs]]
name       = "radio"
level      = "err"
level_name = false
disabled   = true
`

func Test_ParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"silent", LVL_SILENT, false},
		{"ERROR", LVL_ERROR, false},
		{"err", LVL_ERROR, false},
		{"Warning", LVL_WARNING, false},
		{"warn", LVL_WARNING, false},
		{" info ", LVL_INFO, false},
		{"trace", LVL_TRACE, false},
		{"verb", LVL_VERBOSE, false},
		{"5", LVL_VERBOSE, false},
		{"0", LVL_SILENT, false},
		{"6", LVL_SILENT, true},
		{"", LVL_SILENT, true},
		{"debug", LVL_SILENT, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLevel)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_ParseConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(testConfig))
		require.NoError(t, err)
		assert.Equal(t, "\r\n", cfg.LineEnding)
		require.Len(t, cfg.Outputs, 3)
		assert.Equal(t, "serial", cfg.Outputs[0].Name)
		assert.Nil(t, cfg.Outputs[0].Date)
		require.NotNil(t, cfg.Outputs[1].Date)
		assert.False(t, *cfg.Outputs[1].Date)
		assert.True(t, cfg.Outputs[2].Disabled)
	})
	t.Run("empty", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		assert.Empty(t, cfg.Outputs)
	})
	t.Run("unknown_field", func(t *testing.T) {
		_, err := ParseConfig([]byte("[[outputs]]\nname = \"a\"\nlevel = \"info\"\ncolor = true\n"))
		assert.Error(t, err)
	})
	t.Run("syntax", func(t *testing.T) {
		_, err := ParseConfig([]byte("[[outputs]\n"))
		assert.Error(t, err)
	})
	t.Run("bad_level", func(t *testing.T) {
		_, err := ParseConfig([]byte("[[outputs]]\nname = \"a\"\nlevel = \"loud\"\n"))
		assert.ErrorIs(t, err, ErrUnknownLevel)
	})
	t.Run("duplicate_name", func(t *testing.T) {
		_, err := ParseConfig([]byte("[[outputs]]\nname = \"a\"\nlevel = \"info\"\n[[outputs]]\nname = \"a\"\nlevel = \"trace\"\n"))
		assert.ErrorContains(t, err, _ERROR_MESSAGE_DUPLICATE_NAME)
	})
	t.Run("empty_name", func(t *testing.T) {
		_, err := ParseConfig([]byte("[[outputs]]\nlevel = \"info\"\n"))
		assert.ErrorContains(t, err, _ERROR_MESSAGE_EMPTY_NAME)
	})
}

func Test_LoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/slgr.toml", []byte(testConfig), 0644))

	cfg, err := LoadConfig(fs, "/etc/slgr.toml")
	require.NoError(t, err)
	assert.Len(t, cfg.Outputs, 3)

	_, err = LoadConfig(fs, "/etc/missing.toml")
	assert.Error(t, err)
}

func Test_Registry_ApplyConfig(t *testing.T) {
	serial, sdcard, radio := &FakeWriter{}, &FakeWriter{}, &FakeWriter{}
	sinks := map[string]OutType{"serial": serial, "sdcard": sdcard, "radio": radio}
	cfg, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)

	r := testRegistry(nil)
	require.NoError(t, r.ApplyConfig(cfg, sinks))
	assert.Equal(t, 3, r.OutputsCount())
	assert.Equal(t, 2, r.DisplayedCount())
	assert.True(t, r.IsEnabled(serial, LVL_VERBOSE))
	assert.True(t, r.IsEnabled(sdcard, LVL_WARNING))
	assert.False(t, r.IsEnabled(sdcard, LVL_INFO))
	assert.False(t, r.IsEnabled(radio, LVL_ERROR))
	assert.False(t, r.context(sdcard).dateOn)
	assert.True(t, r.context(sdcard).lvlnameOn)
	assert.False(t, r.context(radio).lvlnameOn)

	lv := NewLevels(r)
	lv.Warn.Println("low battery")
	assert.Equal(t, testDate+"[1|2] [WARNING] low battery\r\n", serial.String())
	assert.Equal(t, "[2|2] [WARNING] low battery\r\n", sdcard.String())
	assert.Empty(t, radio.buffer)

	r.Enable(radio)
	serial.Clear()
	lv.Err.Println("fault")
	assert.Equal(t, testDate+"[1|3] [ ERROR ] fault\r\n", serial.String())
	assert.Equal(t, testDate+"[3|3] fault\r\n", radio.String())
}

func Test_Registry_ApplyConfig_UnknownSink(t *testing.T) {
	cfg, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)

	out := &FakeWriter{}
	r := testRegistry(nil)
	err = r.ApplyConfig(cfg, map[string]OutType{"serial": out})
	assert.ErrorIs(t, err, ErrUnknownOutput)
	assert.Zero(t, r.OutputsCount(), "registry has to stay unchanged")

	NewLogger(r, LVL_INFO).Println("x")
	assert.Empty(t, out.buffer)
}

func Test_Registry_ApplyConfig_Invalid(t *testing.T) {
	r := testRegistry(nil)
	cfg := &Config{Outputs: []OutputConfig{{Name: "a", Level: "nope"}}}
	err := r.ApplyConfig(cfg, map[string]OutType{"a": &FakeWriter{}})
	assert.ErrorIs(t, err, ErrUnknownLevel)
	assert.Zero(t, r.OutputsCount())
}

func Test_Registry_ApplyConfig_Full(t *testing.T) {
	cfg := &Config{
		LineEnding: "\r\n",
		Outputs: []OutputConfig{
			{Name: "a", Level: "info"},
			{Name: "b", Level: "error"},
		},
	}
	a, b := &FakeWriter{}, &FakeWriter{}
	sinks := map[string]OutType{"a": a, "b": b}

	t.Run("too_many", func(t *testing.T) {
		r := NewRegistry(WithClock(testClock), WithMaxOutputs(1))
		err := r.ApplyConfig(cfg, sinks)
		assert.ErrorIs(t, err, ErrRegistryFull)
		assert.Zero(t, r.OutputsCount(), "registry has to stay unchanged")
		assert.Equal(t, []byte(DEFAULT_LINE_ENDING), r.eol)
	})
	t.Run("existing_output_fits", func(t *testing.T) {
		r := NewRegistry(WithClock(testClock), WithMaxOutputs(2))
		require.NoError(t, r.Add(a, LVL_VERBOSE))
		require.NoError(t, r.ApplyConfig(cfg, sinks))
		assert.Equal(t, 2, r.OutputsCount())
		assert.Equal(t, LVL_INFO, r.context(a).minlevel)
		assertNumbering(t, r)
	})
	t.Run("shared_writer", func(t *testing.T) {
		r := NewRegistry(WithClock(testClock), WithMaxOutputs(1))
		require.NoError(t, r.ApplyConfig(cfg, map[string]OutType{"a": a, "b": a}))
		assert.Equal(t, 1, r.OutputsCount())
		assert.Equal(t, LVL_ERROR, r.context(a).minlevel, "the last entry wins")
	})
	t.Run("not_comparable", func(t *testing.T) {
		r := testRegistry(nil)
		err := r.ApplyConfig(cfg, map[string]OutType{"a": a, "b": SliceWriter{}})
		assert.ErrorIs(t, err, ErrNotComparable)
		assert.Zero(t, r.OutputsCount())
		assert.Equal(t, []byte(DEFAULT_LINE_ENDING), r.eol)
	})
}
