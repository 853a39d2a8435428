package client

import (
	"sync"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
	"github.com/vaultswap/ledger/errors"
)

// Conn is the connection to a node used by the Client. It is satisfied by a
// remote tendermint node and by an in-process application.
type Conn interface {
	// BroadcastTxCommit submits a transaction and waits until it is
	// included in a block.
	BroadcastTxCommit(tx []byte) (*ctypes.ResultBroadcastTxCommit, error)
	// ABCIQuery runs a query against the last committed state.
	ABCIQuery(path string, data []byte) (abci.ResponseQuery, error)
	// ChainID returns the identifier of the chain the node runs.
	ChainID() (string, error)
}

// HTTPConn sends all requests to a remote node using the tendermint RPC.
type HTTPConn struct {
	rpc *rpcclient.HTTP
}

var _ Conn = (*HTTPConn)(nil)

// NewHTTPConn takes a URL and sends all requests to the remote node
func NewHTTPConn(remote string) *HTTPConn {
	return &HTTPConn{rpc: rpcclient.NewHTTP(remote, "/websocket")}
}

func (c *HTTPConn) BroadcastTxCommit(tx []byte) (*ctypes.ResultBroadcastTxCommit, error) {
	res, err := c.rpc.BroadcastTxCommit(tmtypes.Tx(tx))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast: %s", err)
	}
	return res, nil
}

func (c *HTTPConn) ABCIQuery(path string, data []byte) (abci.ResponseQuery, error) {
	res, err := c.rpc.ABCIQuery(path, data)
	if err != nil {
		return abci.ResponseQuery{}, errors.Wrapf(errors.ErrNetwork, "query: %s", err)
	}
	return res.Response, nil
}

func (c *HTTPConn) ChainID() (string, error) {
	gen, err := c.rpc.Genesis()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "genesis: %s", err)
	}
	return gen.Genesis.ChainID, nil
}

// LocalConn runs an application in process. Every broadcast transaction is
// checked and then delivered in its own block, that is committed right
// away.
type LocalConn struct {
	mu      sync.Mutex
	app     abci.Application
	chainID string
	height  int64
	now     func() time.Time
}

var _ Conn = (*LocalConn)(nil)

// NewLocalConn wraps an application that was already initialized with the
// genesis of given chain.
func NewLocalConn(app abci.Application, chainID string) *LocalConn {
	info := app.Info(abci.RequestInfo{})
	return &LocalConn{
		app:     app,
		chainID: chainID,
		height:  info.LastBlockHeight,
		now:     time.Now,
	}
}

func (c *LocalConn) BroadcastTxCommit(tx []byte) (*ctypes.ResultBroadcastTxCommit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := &ctypes.ResultBroadcastTxCommit{
		Hash: tmtypes.Tx(tx).Hash(),
	}
	res.CheckTx = c.app.CheckTx(tx)
	if res.CheckTx.IsErr() {
		return res, nil
	}

	c.height++
	header := abci.Header{
		ChainID: c.chainID,
		Height:  c.height,
		Time:    c.now(),
	}
	c.app.BeginBlock(abci.RequestBeginBlock{Header: header})
	res.DeliverTx = c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	res.Height = c.height
	return res, nil
}

func (c *LocalConn) ABCIQuery(path string, data []byte) (abci.ResponseQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app.Query(abci.RequestQuery{Path: path, Data: data}), nil
}

func (c *LocalConn) ChainID() (string, error) {
	return c.chainID, nil
}

// Height returns the height of the last committed block.
func (c *LocalConn) Height() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}
