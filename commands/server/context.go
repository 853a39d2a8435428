package server

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/vaultswap/ledger/errors"
)

// FlagLogLevel sets the minimal level of logged messages.
const FlagLogLevel = "log-level"

// Context is shared by the commands of a single process. The logger is
// only set once the flags are parsed.
type Context struct {
	Logger log.Logger
}

// NewContext returns a context that logs nothing until configured.
func NewContext() *Context {
	return &Context{Logger: log.NewNopLogger()}
}

// AddLogFlags registers the logging flags on given root command and
// configures the context logger before any sub command runs.
func AddLogFlags(root *cobra.Command, ctx *Context, out io.Writer) {
	root.PersistentFlags().String(FlagLogLevel, "info", "minimal log level: debug, info, error or none")
	if err := viper.BindPFlag(FlagLogLevel, root.PersistentFlags().Lookup(FlagLogLevel)); err != nil {
		panic(err)
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := NewLogger(out, viper.GetString(FlagLogLevel))
		if err != nil {
			return err
		}
		ctx.Logger = logger
		return nil
	}
}

// NewLogger returns a tendermint logger writing to out, filtering
// messages below given level.
func NewLogger(out io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	return log.NewFilter(logger, opt), nil
}
