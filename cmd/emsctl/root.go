package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/employee-desk/v2/core"
	"github.com/employee-desk/v2/internal/config"
	"github.com/employee-desk/v2/internal/logging"
	"github.com/employee-desk/v2/internal/session"
	"github.com/employee-desk/v2/services"
)

// cli holds what every command needs once the root command has loaded the config.
type cli struct {
	out        io.Writer
	env        string
	configPath string

	cfg       *config.Config
	tokens    core.TokenStore
	logCloser io.Closer
	store     *session.Store
	svc       *services.Services
}

// newRootCmd builds the command tree. The caller closes the returned cli once the
// command has run.
func newRootCmd(out io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "emsctl",
		Short:         "Command line client for the employee management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open()
		},
	}
	root.PersistentFlags().StringVar(&c.env, "env", "development", "environment [dev | development | prod | production]")
	root.PersistentFlags().StringVar(&c.configPath, "config", "./config.toml", "path for the optional TOML config file")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newEmployeesCmd(c),
		newLeaveCmd(c),
		newAttendanceCmd(c),
		newTimesheetsCmd(c),
		newPayrollsCmd(c),
	)
	return root, c
}

func (c *cli) open() error {
	cfg, err := config.Load(c.env, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.logCloser = logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormat == "json",
	})
	if cfg.LogFile == "" {
		// stdout carries command output
		log.SetOutput(os.Stderr)
	}

	tokens, err := core.OpenTokenStore(cfg)
	if err != nil {
		return err
	}
	c.tokens = tokens

	apiClient, err := services.NewApiClient(cfg.APIURL, &http.Client{Timeout: cfg.Timeout()}, tokens)
	if err != nil {
		return err
	}
	c.svc = services.New(apiClient)
	c.store = session.NewStore()
	return nil
}

func (c *cli) close() error {
	var err error
	defer func() {
		c.tokens, c.logCloser = nil, nil
	}()
	if c.tokens != nil {
		err = multierr.Append(err, c.tokens.Close())
	}
	if c.logCloser != nil {
		err = multierr.Append(err, c.logCloser.Close())
	}
	return err
}

// printResponse writes the response body as indented JSON.
func (c *cli) printResponse(resp *services.Response, err error) error {
	if err != nil {
		return err
	}
	return c.printRaw(resp.Body)
}

func (c *cli) printRaw(body json.RawMessage) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		_, err = fmt.Fprintln(c.out, string(body))
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(c.out)
	return err
}

func (c *cli) printJSON(v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.printRaw(body)
}

// readData resolves a --data value: inline JSON, or @path to read it from a file.
func readData(value string) (json.RawMessage, error) {
	if value == "" {
		return nil, errors.New("--data is required")
	}

	data := []byte(value)
	if path, ok := strings.CutPrefix(value, "@"); ok {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
	}
	if !json.Valid(data) {
		return nil, errors.New("--data is not valid JSON")
	}
	return data, nil
}
