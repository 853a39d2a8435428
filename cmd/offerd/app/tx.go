package app

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/sigs"
)

// Tx is the transaction envelope accepted by the node. The message is kept
// serialized and decoded on demand using the constructor registered for
// its path.
type Tx struct {
	Signatures []sigs.StdSignature
	Path       string
	Msg        []byte
}

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps given message into an unsigned transaction.
func NewTx(msg ledger.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	return &Tx{Path: msg.Path(), Msg: raw}, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, tx)
}

// GetMsg decodes the message using the constructor registered for the
// transaction path.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	msg, err := newMsg(tx.Path)
	if err != nil {
		return nil, err
	}
	if err := msg.Unmarshal(tx.Msg); err != nil {
		return nil, errors.Wrapf(err, "decode %s", tx.Path)
	}
	return msg, nil
}

// GetSignBytes returns the serialized transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Path: tx.Path, Msg: tx.Msg}
	return unsigned.Marshal()
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	if len(tx.Signatures) == 0 {
		return nil
	}
	out := make([]*sigs.StdSignature, len(tx.Signatures))
	for i := range tx.Signatures {
		out[i] = &tx.Signatures[i]
	}
	return out
}

// Sign appends a signature of given key, produced for the given chain and
// sequence.
func (tx *Tx) Sign(key solana.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, *sig)
	return nil
}
