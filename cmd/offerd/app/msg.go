package app

import (
	"reflect"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/escrow"
	"github.com/vaultswap/ledger/x/sigs"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
)

// msgTypes maps a message path to the type of the message.
var msgTypes = register(
	&sigs.BumpSequenceMsg{},
	&system.TransferMsg{},
	&token.CreateMintMsg{},
	&token.MintToMsg{},
	&token.CreateAssociatedAccountMsg{},
	&token.TransferMsg{},
	&token.CloseAccountMsg{},
	&escrow.MakeOfferMsg{},
	&escrow.TakeOfferMsg{},
	&escrow.CloseOfferMsg{},
)

func register(msgs ...ledger.Msg) map[string]reflect.Type {
	types := make(map[string]reflect.Type, len(msgs))
	for _, m := range msgs {
		if _, ok := types[m.Path()]; ok {
			panic("duplicated message path: " + m.Path())
		}
		types[m.Path()] = reflect.TypeOf(m).Elem()
	}
	return types
}

// newMsg returns a new, empty message instance registered for given path.
func newMsg(path string) (ledger.Msg, error) {
	t, ok := msgTypes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", path)
	}
	return reflect.New(t).Interface().(ledger.Msg), nil
}

// MsgPaths returns the paths of all messages accepted by the application.
func MsgPaths() []string {
	paths := make([]string, 0, len(msgTypes))
	for p := range msgTypes {
		paths = append(paths, p)
	}
	return paths
}
