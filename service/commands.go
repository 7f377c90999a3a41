package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bulletin/app/config"
	apperrors "bulletin/app/errors"

	"go.uber.org/zap"
)

// ErrCancelled is returned when the operator declines a confirmation prompt.
var ErrCancelled = apperrors.New("operation cancelled")

// Console carries the streams and prompt policy of a db command.
type Console struct {
	In  io.Reader
	Out io.Writer
	// Yes answers every confirmation prompt with yes.
	Yes bool
}

func (c Console) confirm(question string) bool {
	if c.Yes {
		return true
	}
	fmt.Fprintf(c.Out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(c.In).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

func onDisk(cfg config.Storage) error {
	if cfg.InMemory {
		return apperrors.New("db commands need an on-disk store; storage.in_memory is set")
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// InitDB creates a new empty database.
func InitDB(cfg config.Storage, console Console) error {
	if err := onDisk(cfg); err != nil {
		return err
	}
	if exists(cfg.Path) {
		fmt.Fprintln(console.Out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}

	store, err := OpenStore(cfg, zap.NewNop())
	if err != nil {
		return apperrors.Wrap(err, "failed to initialize database")
	}
	if err := store.Close(); err != nil {
		return apperrors.Wrap(err, "failed to initialize database")
	}

	fmt.Fprintln(console.Out, "Database initialized successfully")
	return nil
}

// Clean removes the database after confirmation.
func Clean(cfg config.Storage, console Console) error {
	if err := onDisk(cfg); err != nil {
		return err
	}
	if !exists(cfg.Path) {
		fmt.Fprintln(console.Out, "Database is already clean (does not exist)")
		return nil
	}

	if !console.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(console.Out, "Operation cancelled")
		return ErrCancelled
	}

	if err := os.RemoveAll(cfg.Path); err != nil {
		return apperrors.Wrap(err, "failed to clean database")
	}
	fmt.Fprintln(console.Out, "Database cleaned successfully")
	return nil
}

// DefaultBackupFile names a timestamped backup next to the database directory.
func DefaultBackupFile(cfg config.Storage, now time.Time) string {
	return filepath.Join(filepath.Dir(cfg.Path), "backups", fmt.Sprintf("backup_%d.db", now.Unix()))
}

// Backup writes a full backup of the database to dest and returns the path
// written. An empty dest uses DefaultBackupFile.
func Backup(cfg config.Storage, dest string, console Console) (string, error) {
	if err := onDisk(cfg); err != nil {
		return "", err
	}
	if !exists(cfg.Path) {
		return "", apperrors.New("no database exists to backup")
	}
	if dest == "" {
		dest = DefaultBackupFile(cfg, time.Now())
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", apperrors.Wrap(err, "failed to create backup directory")
	}

	store, err := OpenStore(cfg, zap.NewNop())
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open database")
	}
	defer store.Close()

	f, err := os.Create(dest)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create backup file")
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		return "", apperrors.Wrap(err, "failed to backup database")
	}

	fmt.Fprintf(console.Out, "Database backed up successfully to %s\n", dest)
	return dest, nil
}

// Restore replaces the database with the contents of backupFile. An existing
// database is only replaced after confirmation, and only once the backup has
// loaded cleanly into a staging directory next to it.
func Restore(cfg config.Storage, backupFile string, console Console) error {
	if err := onDisk(cfg); err != nil {
		return err
	}

	fi, err := os.Stat(backupFile)
	if err != nil {
		return apperrors.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return apperrors.Errorf("backup file is empty: %s", backupFile)
	}

	replacing := exists(cfg.Path)
	if replacing && !console.confirm("Existing database found. Do you want to replace it?") {
		fmt.Fprintln(console.Out, "Operation cancelled")
		return ErrCancelled
	}

	staging := config.Storage{Path: cfg.Path + ".restore"}
	if err := os.RemoveAll(staging.Path); err != nil {
		return apperrors.Wrap(err, "failed to clear staging directory")
	}
	if err := loadBackup(staging, backupFile); err != nil {
		_ = os.RemoveAll(staging.Path)
		return err
	}

	if replacing {
		previous := cfg.Path + ".previous"
		if err := os.RemoveAll(previous); err != nil {
			return apperrors.Wrap(err, "failed to clear previous database")
		}
		if err := os.Rename(cfg.Path, previous); err != nil {
			return apperrors.Wrap(err, "failed to move existing database aside")
		}
		if err := os.Rename(staging.Path, cfg.Path); err != nil {
			_ = os.Rename(previous, cfg.Path)
			return apperrors.Wrap(err, "failed to swap in restored database")
		}
		if err := os.RemoveAll(previous); err != nil {
			return apperrors.Wrap(err, "failed to remove previous database")
		}
	} else if err := os.Rename(staging.Path, cfg.Path); err != nil {
		return apperrors.Wrap(err, "failed to move restored database into place")
	}

	fmt.Fprintln(console.Out, "Database restored successfully")
	return nil
}

// loadBackup opens a fresh store at cfg and loads backupFile into it.
func loadBackup(cfg config.Storage, backupFile string) (err error) {
	store, err := OpenStore(cfg, zap.NewNop())
	if err != nil {
		return apperrors.Wrap(err, "failed to open database")
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = apperrors.Wrap(cerr, "failed to close restored database")
		}
	}()

	f, err := os.Open(backupFile)
	if err != nil {
		return apperrors.Wrap(err, "failed to open backup file")
	}
	defer f.Close()

	// badger panics on some corrupt inputs instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Errorf("panic occurred during restore: %v", r)
		}
	}()
	if err := store.Restore(f); err != nil {
		return apperrors.Wrap(err, "failed to restore database")
	}
	return nil
}
