package spec_test

import (
	"errors"
	"io"
	"testing"

	"github.com/eak1mov/go-bluenoise/tileset/spec"
	"github.com/stretchr/testify/require"
)

func TestHeaderSerializer(t *testing.T) {
	header1 := spec.Header{TileCount: 8, SubtilesPerAxis: 4, SubdivisionCount: 2}
	headerData := spec.SerializeHeader(&header1)
	require.Len(t, headerData, spec.HeaderLength)
	header2, err := spec.DeserializeHeader(headerData)
	require.NoError(t, err)
	require.Equal(t, header1, *header2)
	require.Equal(t, 16, header2.GridSize())
}

func TestHeaderErrors(t *testing.T) {
	_, err := spec.DeserializeHeader([]byte("foo"))
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
	require.Truef(t, errors.Is(err, io.ErrUnexpectedEOF), "%v", err)

	zero := spec.Header{TileCount: 0, SubtilesPerAxis: 4, SubdivisionCount: 1}
	_, err = spec.DeserializeHeader(spec.SerializeHeader(&zero))
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
}
