package core

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"it/internal/engine"
	"it/internal/linebuf"
	"it/internal/logutil"
	"it/internal/rewrite"
	"it/pkg/lineop"
)

// Config is everything one invocation needs, built once from the command line.
type Config struct {
	Files  []string
	Op     lineop.Operation
	Backup bool
	DryRun bool
	// Diff prints a line diff instead of the content. It implies DryRun.
	Diff bool
}

// Editor applies a Config to its target files.
type Editor struct {
	Store  TargetStore
	Stdout io.Writer
	Log    *logrus.Logger
}

// NewEditor returns an Editor over store that prints dry-run output to stdout.
func NewEditor(store TargetStore, stdout io.Writer, log *logrus.Logger) *Editor {
	if log == nil {
		log = logutil.Discard()
	}
	return &Editor{Store: store, Stdout: stdout, Log: log}
}

// Run processes every file in order and stops at the first failure.
func (e *Editor) Run(cfg Config) error {
	for _, path := range cfg.Files {
		if err := e.ProcessFile(cfg, path); err != nil {
			return err
		}
	}
	return nil
}

// ProcessFile validates path, applies cfg.Op to it and writes or prints the result.
func (e *Editor) ProcessFile(cfg Config, path string) error {
	log := e.Log.WithFields(logrus.Fields{"file": path, "op": cfg.Op.String()})

	info, err := e.Store.Stat(path)
	if err != nil {
		return fileError(path, fmt.Errorf("%w: %v", ErrMetadataUnreadable, err))
	}
	if info.IsDir {
		return fileError(path, ErrInvalidPath)
	}
	if info.Exists && info.ReadOnly() {
		return fileError(path, ErrPermissionDenied)
	}

	dryRun := cfg.DryRun || cfg.Diff
	if !dryRun && cfg.Op.Kind == lineop.KindAppend {
		done, err := e.appendInPlace(cfg, path, info, log)
		if done || err != nil {
			return err
		}
	}

	raw, err := e.Store.ReadFile(path)
	if err != nil {
		return fileError(path, fmt.Errorf("read: %w", err))
	}
	before := linebuf.Load(raw)
	after := before.Clone()
	if err := engine.Apply(after, cfg.Op); err != nil {
		return fileError(path, err)
	}
	log.WithField("lines", after.Len()).Debug("applied operation")

	if dryRun {
		var emitter rewrite.Emitter = rewrite.ContentEmitter{W: e.Stdout}
		if cfg.Diff {
			emitter = rewrite.DiffEmitter{W: e.Stdout}
		}
		if err := emitter.Emit(path, before, after); err != nil {
			return fileError(path, fmt.Errorf("write output: %w", err))
		}
		return nil
	}

	if err := e.backup(cfg, path, info, log); err != nil {
		return err
	}
	perm := info.Mode.Perm()
	if !info.Exists {
		perm = 0o644
	}
	if err := e.Store.WriteFile(path, after.Bytes(), perm); err != nil {
		return fileError(path, fmt.Errorf("write: %w", err))
	}
	return nil
}

// appendInPlace writes the appended line at the end of the file without loading it,
// when that produces the same bytes as a full rewrite. It reports whether it handled
// the file.
func (e *Editor) appendInPlace(cfg Config, path string, info TargetInfo, log *logrus.Entry) (bool, error) {
	last, ok, err := e.Store.LastByte(path)
	if err != nil {
		return false, fileError(path, fmt.Errorf("read: %w", err))
	}
	if !rewrite.CanAppendInPlace(last, ok) {
		log.Debug("file lacks trailing newline, rewriting")
		return false, nil
	}
	if err := e.backup(cfg, path, info, log); err != nil {
		return false, err
	}
	if err := e.Store.AppendFile(path, rewrite.AppendedLine(cfg.Op.Text)); err != nil {
		return false, fileError(path, fmt.Errorf("append: %w", err))
	}
	log.Info("appended in place")
	return true, nil
}

func (e *Editor) backup(cfg Config, path string, info TargetInfo, log *logrus.Entry) error {
	if !cfg.Backup || !info.Exists {
		return nil
	}
	backupPath := path + ".bak"
	if err := e.Store.Copy(path, backupPath); err != nil {
		return fileError(path, fmt.Errorf("%w '%s': %v", ErrBackupFailed, backupPath, err))
	}
	log.WithField("backup", backupPath).Info("created backup")
	return nil
}
