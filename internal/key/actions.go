package key

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/breezy/internal/common"
	"github.com/dtnitsch/breezy/pkg/credentials"
	"github.com/dtnitsch/breezy/pkg/db"
	"github.com/dtnitsch/breezy/pkg/orchestrator"
	"github.com/urfave/cli/v2"
)

const (
	MsgSaved   = "API key saved"
	MsgRemoved = "API key removed"
	MsgEmpty   = "Please enter an API key"
	MsgNotSet  = "No API key saved"
)

type keyStatus struct {
	Saved bool   `json:"saved" yaml:"saved"`
	Key   string `json:"key,omitempty" yaml:"key,omitempty"`
}

func openStore(c *cli.Context) (*credentials.DBStore, func(), string, error) {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return nil, nil, "", cli.Exit(err.Error(), 1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to open database: %w", err)
	}
	return credentials.NewDBStore(database), func() { _ = database.Close() }, cfg.Format, nil
}

// SetAction saves the key given as an argument, or read from stdin.
func SetAction(c *cli.Context) error {
	value := strings.TrimSpace(c.Args().First())
	if value == "" && c.NArg() == 0 {
		var err error
		value, err = readKey(c.App.Reader)
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}
	if value == "" {
		notify(c, orchestrator.LevelError, MsgEmpty)
		return cli.Exit("", 1)
	}

	store, closeFn, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := store.Set(c.Context, credentials.APIKeyName, value); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	notify(c, orchestrator.LevelSuccess, MsgSaved)
	return nil
}

// ShowAction prints the stored key with all but the last four characters masked.
func ShowAction(c *cli.Context) error {
	store, closeFn, format, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeFn()

	value, ok, err := store.Get(c.Context, credentials.APIKeyName)
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	status := keyStatus{Saved: ok && value != ""}
	if status.Saved {
		status.Key = common.MaskSecret(value)
	}

	if format != "text" {
		return common.WriteOutput(c.App.Writer, format, status)
	}
	if !status.Saved {
		fmt.Fprintln(c.App.Writer, MsgNotSet)
		return nil
	}
	fmt.Fprintln(c.App.Writer, status.Key)
	return nil
}

// ClearAction removes the stored key.
func ClearAction(c *cli.Context) error {
	store, closeFn, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := store.Remove(c.Context, credentials.APIKeyName); err != nil {
		return fmt.Errorf("failed to remove API key: %w", err)
	}
	notify(c, orchestrator.LevelSuccess, MsgRemoved)
	return nil
}

func notify(c *cli.Context, level orchestrator.Level, message string) {
	orchestrator.WriterNotifier{W: c.App.ErrWriter}.Notify(level, message)
}

func readKey(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
