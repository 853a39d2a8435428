package ledger

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger/errors"
)

type sampleAccount struct {
	Owner  solana.PublicKey
	Amount uint64
	Bump   uint8
}

func TestAccountEncoding(t *testing.T) {
	acc := sampleAccount{
		Owner:  solana.MustPublicKeyFromBase58("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"),
		Amount: 10_000_000,
		Bump:   254,
	}

	raw, err := MarshalAccount("Sample", acc)
	require.NoError(t, err)
	// discriminator, public key, u64, u8
	assert.Len(t, raw, DiscriminatorSize+32+8+1)

	var got sampleAccount
	require.NoError(t, UnmarshalAccount("Sample", raw, &got))
	assert.Equal(t, acc, got)

	err = UnmarshalAccount("Other", raw, &got)
	assert.True(t, errors.ErrType.Is(err))

	err = UnmarshalAccount("Sample", raw[:4], &got)
	assert.True(t, errors.ErrInput.Is(err))

	err = UnmarshalAccount("Sample", append(raw, 0), &got)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestDiscriminator(t *testing.T) {
	// Discriminators must differ between account kinds.
	assert.NotEqual(t, Discriminator("Offer"), Discriminator("Mint"))
	assert.Equal(t, Discriminator("Offer"), Discriminator("Offer"))
}
