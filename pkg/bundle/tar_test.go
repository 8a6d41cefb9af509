package bundle

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarDirectory(t *testing.T) {
	b := &bytes.Buffer{}
	err := TarDirectory(b, "testdata/flameprof-test-run")
	assert.Nil(t, err)

	files := []tar.Header{}
	reader := tar.NewReader(b)
	for {
		hdr, err := reader.Next()
		if err == io.EOF {
			break
		}
		assert.Nil(t, err)

		files = append(files, tar.Header{
			Name: hdr.Name,
			Size: hdr.Size,
		})
	}

	expected := []tar.Header{
		{
			Name: "flameprof-test-run/flamegraph.json",
			Size: 70,
		},
		{
			Name: "flameprof-test-run/top.json",
			Size: 52,
		},
		{
			Name: "flameprof-test-run/traces.txt",
			Size: 80,
		},
	}
	assert.EqualValues(t, expected, files)
}

func TestTarDirectoryDoesNotExist(t *testing.T) {
	b := &bytes.Buffer{}
	err := TarDirectory(b, "does-not-exist")
	assert.NotNil(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "flameprof-abc.tar", Filename("flameprof-abc"))
}
