package testing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestGenerateSSHKeyPair(t *testing.T) {
	kp, err := GenerateSSHKeyPair()
	require.NoError(t, err)

	signer, err := ssh.ParsePrivateKey(kp.PrivateKey)
	require.NoError(t, err)

	pub, _, _, _, err := ssh.ParseAuthorizedKey(kp.PublicKey)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(signer.PublicKey().Marshal(), pub.Marshal()))
	assert.Equal(t, ssh.KeyAlgoED25519, pub.Type())
}
