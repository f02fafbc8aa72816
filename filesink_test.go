package slgr

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FileSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink, err := OpenFileSink(fs, "/log.txt", false)
	require.NoError(t, err)
	assert.Equal(t, "/log.txt", sink.Name())

	r := testRegistry(nil, sink)
	lv := NewLevels(r)
	lv.Inf.Println("booted")
	lv.Verb.Put("v=", 3).Endl()
	require.NoError(t, sink.Close())

	data, err := afero.ReadFile(fs, "/log.txt")
	require.NoError(t, err)
	assert.Equal(t, testDate+"[ INFO  ] booted\n"+testDate+"[VERBOSE] v=3\n", string(data))
}

func Test_FileSink_Append(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/log.txt", []byte("old\n"), 0644))

	for _, syncEach := range []bool{false, true} {
		sink, err := OpenFileSink(fs, "/log.txt", syncEach)
		require.NoError(t, err)
		n, err := sink.Write([]byte("new\n"))
		assert.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.NoError(t, sink.Sync())
		require.NoError(t, sink.Close())
	}

	data, err := afero.ReadFile(fs, "/log.txt")
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\nnew\n", string(data))
}

func Test_FileSink_WriteAfterClose(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink, err := OpenFileSink(fs, "/log.txt", false)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	ferr := &FakeWriter{}
	r := testRegistry(ferr, sink)
	NewLogger(r, LVL_ERROR).Println("lost")
	assert.True(t, r.LastWriteFailed(sink))
	assert.True(t, r.IsEnabled(sink, LVL_ERROR), "write errors don't disable outputs")
	assert.Contains(t, ferr.String(), _ERROR_MESSAGE_WRITE_FAILED)
}

func Test_OpenFileSink_ReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := OpenFileSink(fs, "/log.txt", false)
	assert.Error(t, err)
}
