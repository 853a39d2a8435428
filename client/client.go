/*
Package client submits transactions to an offerd node and reads its state.
It signs every transaction with the next sequence of each signer and
rebuilds failures as registered errors, so callers can test them with Is.
*/
package client

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/app"
	offerapp "github.com/vaultswap/ledger/cmd/offerd/app"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/escrow"
	"github.com/vaultswap/ledger/x/sigs"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
)

// Client provides typed access to the programs of an offerd node.
type Client struct {
	conn   Conn
	token  token.Configuration
	escrow escrow.Configuration

	mu      sync.Mutex
	chainID string
}

// NewClient returns a client using the default program configuration.
func NewClient(conn Conn) *Client {
	return &Client{
		conn:   conn,
		token:  token.DefaultConfiguration(),
		escrow: escrow.DefaultConfiguration(),
	}
}

// WithPrograms sets the program configuration, that must match the one of
// the node genesis.
func (c *Client) WithPrograms(tc token.Configuration, ec escrow.Configuration) *Client {
	c.token = tc
	c.escrow = ec
	return c
}

// ChainID returns the chain id of the node. The value is cached after the
// first successful call.
func (c *Client) ChainID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID != "" {
		return c.chainID, nil
	}
	id, err := c.conn.ChainID()
	if err != nil {
		return "", err
	}
	c.chainID = id
	return id, nil
}

// Submit signs given message by all signers and broadcasts it. The first
// signer pays the transaction fee. Failed transactions return the error
// registered under the response code.
func (c *Client) Submit(signers []solana.PrivateKey, msg ledger.Msg) (*ledger.DeliverResult, error) {
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signers")
	}
	chainID, err := c.ChainID()
	if err != nil {
		return nil, err
	}
	tx, err := offerapp.NewTx(msg)
	if err != nil {
		return nil, err
	}
	signed := make(map[solana.PublicKey]bool, len(signers))
	for _, key := range signers {
		if signed[key.PublicKey()] {
			continue
		}
		signed[key.PublicKey()] = true
		seq, err := c.NextSequence(key.PublicKey())
		if err != nil {
			return nil, err
		}
		if err := tx.Sign(key, chainID, seq); err != nil {
			return nil, errors.Wrapf(err, "sign by %s", key.PublicKey())
		}
	}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, err
	}

	res, err := c.conn.BroadcastTxCommit(raw)
	if err != nil {
		return nil, err
	}
	if _, err := ledger.ParseCheckOrError(res.CheckTx); err != nil {
		return nil, err
	}
	return ledger.ParseDeliverOrError(res.DeliverTx)
}

// Query runs a query and returns all models found.
func (c *Client) Query(path string, data []byte) ([]ledger.Model, error) {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return nil, err
	}
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	if len(res.Key) == 0 {
		return nil, nil
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads a single model stored under key into dest. ErrNotFound is
// returned if the key does not exist.
func (c *Client) queryOne(path string, key []byte, dest ledger.Persistent) error {
	models, err := c.Query(path, key)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", path, key)
	}
	return dest.Unmarshal(models[0].Value)
}

// NextSequence returns the sequence the next signature of given key must
// use.
func (c *Client) NextSequence(addr solana.PublicKey) (int64, error) {
	var user sigs.UserData
	err := c.queryOne("/auth", addr[:], &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return user.Sequence, nil
}

// NativeBalance returns the lamports held by given address.
func (c *Client) NativeBalance(addr solana.PublicKey) (uint64, error) {
	var acct system.Account
	err := c.queryOne("/accounts", addr[:], &acct)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return acct.Lamports, nil
}

// AccountExists returns true if any state is held under given address: a
// lamport balance, a mint, a token account or an offer.
func (c *Client) AccountExists(addr solana.PublicKey) (bool, error) {
	lamports, err := c.NativeBalance(addr)
	if err != nil {
		return false, err
	}
	if lamports > 0 {
		return true, nil
	}
	for _, path := range []string{"/mints", "/tokens", "/offers"} {
		models, err := c.Query(path, addr[:])
		if err != nil {
			return false, err
		}
		if len(models) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// TokenAccount returns the token account stored under given address.
func (c *Client) TokenAccount(addr solana.PublicKey) (*token.Account, error) {
	var acct token.Account
	if err := c.queryOne("/tokens", addr[:], &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// AssociatedAddress returns the associated token account address of the
// owner for given mint.
func (c *Client) AssociatedAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	return c.token.AssociatedAddress(owner, mint)
}

// TokenBalance returns the balance of the associated token account of the
// owner. A missing account holds zero tokens.
func (c *Client) TokenBalance(owner, mint solana.PublicKey) (uint64, error) {
	addr, err := c.AssociatedAddress(owner, mint)
	if err != nil {
		return 0, err
	}
	acct, err := c.TokenAccount(addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return acct.Amount, nil
}

// TransferLamports moves lamports from the key owner to given address.
func (c *Client) TransferLamports(from solana.PrivateKey, to solana.PublicKey, lamports uint64) error {
	_, err := c.Submit([]solana.PrivateKey{from}, &system.TransferMsg{
		From:     from.PublicKey(),
		To:       to,
		Lamports: lamports,
	})
	return err
}

// CreateMintAndMintTo creates a new mint controlled by authority and issues
// amount units to the associated token account of the holder. The payer
// funds the rent of the created accounts.
func (c *Client) CreateMintAndMintTo(payer, authority solana.PrivateKey, decimals uint8, holder solana.PublicKey, amount uint64) (solana.PublicKey, error) {
	mint, err := solana.NewRandomPrivateKey()
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(errors.ErrInput, "mint key: %s", err)
	}
	_, err = c.Submit([]solana.PrivateKey{payer, mint}, &token.CreateMintMsg{
		Payer:         payer.PublicKey(),
		Mint:          mint.PublicKey(),
		MintAuthority: authority.PublicKey(),
		Decimals:      decimals,
	})
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "create mint")
	}
	dest, err := c.CreateAssociatedAccount(payer, holder, mint.PublicKey())
	if err != nil {
		return solana.PublicKey{}, err
	}
	if amount == 0 {
		return mint.PublicKey(), nil
	}
	_, err = c.Submit([]solana.PrivateKey{authority}, &token.MintToMsg{
		Mint:        mint.PublicKey(),
		Destination: dest,
		Authority:   authority.PublicKey(),
		Amount:      amount,
	})
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "mint to")
	}
	return mint.PublicKey(), nil
}

// CreateAssociatedAccount creates the associated token account of the owner
// unless it already exists. It returns the account address.
func (c *Client) CreateAssociatedAccount(payer solana.PrivateKey, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	_, err := c.Submit([]solana.PrivateKey{payer}, &token.CreateAssociatedAccountMsg{
		Payer: payer.PublicKey(),
		Owner: owner,
		Mint:  mint,
	})
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "create associated account")
	}
	return c.AssociatedAddress(owner, mint)
}
