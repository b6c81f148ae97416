package crypto

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_KnownVector(t *testing.T) {
	// BLAKE2b-256 пустой строки
	digest, err := Digest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", digest)
}

func TestDigest_Deterministic(t *testing.T) {
	a, err := Digest(strings.NewReader("sticker bytes"))
	require.NoError(t, err)
	b, err := Digest(strings.NewReader("sticker bytes"))
	require.NoError(t, err)
	c, err := Digest(strings.NewReader("other bytes"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestVerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	digest, err := DigestFile(path)
	require.NoError(t, err)

	tests := []struct {
		name    string
		digest  string
		wantErr error
		errMsg  string
	}{
		{name: "match", digest: digest},
		{name: "mismatch", digest: strings.Repeat("0", 64), wantErr: ErrDigestMismatch},
		{name: "empty", digest: "", errMsg: "digest cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyFile(path, tt.digest)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}
		})
	}

	_, err = DigestFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
