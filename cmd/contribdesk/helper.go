package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/harunnryd/contribdesk/internal/config"
	"github.com/harunnryd/contribdesk/internal/console"
	"github.com/harunnryd/contribdesk/internal/emit"
	"github.com/harunnryd/contribdesk/internal/store"

	"github.com/spf13/cobra"
)

func loadConfigForCommand(cmd *cobra.Command) (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	loadedCfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}

	return loadedCfg, nil
}

// boardDeps are the collaborators a command may override before the board is built.
// Nil fields fall back to the configured output directory and a stdin prompt.
type boardDeps struct {
	sink    emit.Sink
	confirm console.Confirmer
}

// executeWithBoard opens the configured store, builds a board over it,
// loads it once and hands it to fn.
func executeWithBoard(cmd *cobra.Command, deps boardDeps, fn func(ctx context.Context, board *console.Board, st *store.Store) error) error {
	loadedCfg, err := loadConfigForCommand(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.Open(loadedCfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	sink := deps.sink
	if sink == nil {
		dirSink, err := emit.NewDirSink(loadedCfg.Export.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to prepare output directory: %w", err)
		}
		sink = dirSink
	}

	confirm := deps.confirm
	if confirm == nil {
		confirm = console.NewPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ctx := commandContext(cmd)
	board := console.NewBoard(st, emit.NewEmitter(sink), confirm, console.WithNotices(cmd.ErrOrStderr()))
	board.Init(ctx)

	if err := fn(ctx, board, st); err != nil {
		if len(board.Notices()) > 0 {
			return reportedError{err: err}
		}
		return err
	}
	return nil
}

// reportedError marks a failure the board already showed as a notice.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// reportError prints err to w unless a notice already showed it.
func reportError(w io.Writer, err error) {
	var reported reportedError
	if err == nil || errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, err)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
