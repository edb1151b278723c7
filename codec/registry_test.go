package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-medimg-codec/codec"
)

func TestCodecRegistry(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantFound bool
		wantName  string
	}{
		{
			name:      "Get uncompressed by name",
			key:       "Uncompressed",
			wantFound: true,
			wantName:  "Uncompressed",
		},
		{
			name:      "Get uncompressed by UID",
			key:       "1.2.840.10008.1.2.1",
			wantFound: true,
			wantName:  "Uncompressed",
		},
		{
			name:      "Get non-existent codec",
			key:       "non-existent",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.Get(tt.key)
			if !tt.wantFound {
				assert.ErrorIs(t, err, codec.ErrCodecNotFound)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Info().Name)
		})
	}
}

func TestRegistryRegistersBothUIDs(t *testing.T) {
	r := codec.NewRegistry()
	c := &fakeCodec{info: codec.Info{
		Name:                   "fake",
		TransferSyntaxLossless: "1.2.3.1",
		TransferSyntaxLossy:    "1.2.3.2",
	}}
	r.Register(c)

	for _, key := range []string{"fake", "1.2.3.1", "1.2.3.2"} {
		got, err := r.Get(key)
		require.NoError(t, err, key)
		assert.Same(t, c, got, key)
	}
	assert.Len(t, r.List(), 1, "codec registered under three keys must be listed once")
}

func TestRegistryListSortedByName(t *testing.T) {
	r := codec.NewRegistry()
	r.Register(&fakeCodec{info: codec.Info{Name: "zeta"}})
	r.Register(&fakeCodec{info: codec.Info{Name: "alpha"}})
	r.Register(&fakeCodec{info: codec.Info{Name: "mid"}})

	var names []string
	for _, c := range r.List() {
		names = append(names, c.Info().Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

type fakeCodec struct {
	info codec.Info
}

func (f *fakeCodec) Encode(*codec.ImageData, *codec.Config) ([]byte, error) { return nil, nil }
func (f *fakeCodec) Decode([]byte, int, int, int, int) (*codec.ImageData, error) {
	return nil, nil
}
func (f *fakeCodec) Info() codec.Info                 { return f.info }
func (f *fakeCodec) Capabilities() codec.Capabilities { return codec.Capabilities{} }
func (f *fakeCodec) CanEncode(*codec.ImageData) bool  { return false }
func (f *fakeCodec) TransferSyntaxUID(lossless bool) (string, bool) {
	return codec.TransferSyntaxFor(f.info, lossless)
}
