package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dshemin/lockbox/internal/adapter"
	"github.com/dshemin/lockbox/internal/app"
	"github.com/dshemin/lockbox/internal/config"
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `Usage: lockbox-client [flags] <command>

Commands:
  login    start a session from an ID token
  seal     encrypt text or a file under a password
  unseal   decrypt an envelope under a password
  status   show the account's lockout state
  logout   end the session (prints a freeze handoff if frozen)
  version  print the server version
`

type clientFlags struct {
	address string
	timeout time.Duration
	token   string

	idToken string
	freeze  string
	email   string

	password string
	content  string
	file     string
	envelope string
	out      string
}

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("lockbox-client")

	flags, command, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    flags.address,
		RequestTimeout: flags.timeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	if flags.token != "" {
		serverAdapter.SetToken(flags.token)
	}

	ctx, cancel := context.WithTimeout(context.Background(), flags.timeout)
	defer cancel()

	if err := runCommand(ctx, command, flags, serverAdapter); err != nil {
		log.Error().Err(err).Str("command", command).Msg("command failed")
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (clientFlags, string, error) {
	var flags clientFlags

	fs := flag.NewFlagSet("lockbox-client", flag.ContinueOnError)
	fs.StringVar(&flags.address, "a", "localhost:8080", "server address")
	fs.DurationVar(&flags.timeout, "timeout", 30*time.Second, "request timeout")
	fs.StringVar(&flags.token, "token", "", "session token from a previous login")
	fs.StringVar(&flags.idToken, "id-token", "", "ID token to log in with")
	fs.StringVar(&flags.freeze, "freeze", "", "freeze handoff deadline from a previous logout")
	fs.StringVar(&flags.email, "email", "", "freeze handoff e-mail from a previous logout")
	fs.StringVar(&flags.password, "password", "", "password to seal or unseal with")
	fs.StringVar(&flags.content, "content", "", "text content to seal")
	fs.StringVar(&flags.file, "file", "", "path of a file to seal as a binary document")
	fs.StringVar(&flags.envelope, "envelope", "", "envelope to unseal")
	fs.StringVar(&flags.out, "out", "", "path to write unsealed binary content to")

	if err := fs.Parse(args); err != nil {
		return clientFlags{}, "", err
	}

	if fs.NArg() != 1 {
		return clientFlags{}, "", errors.New("expected exactly one command")
	}

	return flags, fs.Arg(0), nil
}

func runCommand(ctx context.Context, command string, flags clientFlags, serverAdapter adapter.ServerAdapter) error {
	switch command {
	case "login":
		return runLogin(ctx, flags, serverAdapter)
	case "seal":
		return runSeal(ctx, flags, serverAdapter)
	case "unseal":
		return runUnseal(ctx, flags, serverAdapter)
	case "status":
		return runStatus(ctx, serverAdapter)
	case "logout":
		return runLogout(ctx, serverAdapter)
	case "version":
		return runVersion(ctx, serverAdapter)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, flags clientFlags, serverAdapter adapter.ServerAdapter) error {
	if flags.idToken == "" {
		return errors.New("login requires -id-token")
	}

	response, err := serverAdapter.Login(ctx, models.LoginRequest{
		IDToken: flags.idToken,
		Freeze:  flags.freeze,
		Email:   flags.email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s (account %s)\n", response.User.Email, response.AccountID)
	if response.Frozen {
		fmt.Printf("%s (%s remaining)\n", app.MsgAccountFrozen, millisToDuration(response.RemainingMillis))
	}
	fmt.Printf("token: %s\n", serverAdapter.Token())

	return nil
}

func runSeal(ctx context.Context, flags clientFlags, serverAdapter adapter.ServerAdapter) error {
	if flags.password == "" {
		return errors.New("seal requires -password")
	}

	request := models.SealRequest{Password: flags.password}

	switch {
	case flags.file != "":
		raw, err := os.ReadFile(flags.file)
		if err != nil {
			return fmt.Errorf("read file to seal: %w", err)
		}

		request.Content = base64.StdEncoding.EncodeToString(raw)
		request.Binary = true

		fmt.Printf("sealing %s (%s)\n", flags.file, utils.FormatFileSize(int64(len(raw))))
	case flags.content != "":
		request.Content = flags.content
	default:
		return errors.New("seal requires -content or -file")
	}

	response, err := serverAdapter.Seal(ctx, request)
	if err != nil {
		return err
	}

	fmt.Println(response.Envelope)

	return nil
}

func runUnseal(ctx context.Context, flags clientFlags, serverAdapter adapter.ServerAdapter) error {
	if flags.envelope == "" || flags.password == "" {
		return errors.New("unseal requires -envelope and -password")
	}

	response, err := serverAdapter.Unseal(ctx, models.UnsealRequest{
		Envelope: flags.envelope,
		Password: flags.password,
	})
	if err != nil {
		return err
	}

	if response.Kind == models.FrameEncodedBinary {
		raw, err := base64.StdEncoding.DecodeString(response.Content)
		if err != nil {
			return fmt.Errorf("decode unsealed binary content: %w", err)
		}

		if flags.out == "" {
			return errors.New("unsealed content is binary, pass -out to write it to a file")
		}

		if err := os.WriteFile(flags.out, raw, 0o600); err != nil {
			return fmt.Errorf("write unsealed file: %w", err)
		}

		fmt.Printf("wrote %s (%s)\n", flags.out, utils.FormatFileSize(int64(len(raw))))
		return nil
	}

	fmt.Println(response.Content)

	return nil
}

func runStatus(ctx context.Context, serverAdapter adapter.ServerAdapter) error {
	response, err := serverAdapter.Status(ctx)
	if err != nil {
		return err
	}

	if response.Status.Allowed {
		fmt.Printf("unlocked, %d failed attempt(s) recorded\n", response.Status.FailedAttempts)
	} else {
		fmt.Printf("frozen, %s remaining\n", millisToDuration(response.Status.RemainingMillis))
	}

	if response.Stats != nil {
		fmt.Printf("journal: %d failed / %d successful attempts total\n",
			response.Stats.TotalFailed, response.Stats.TotalSuccess)
	}

	return nil
}

func runLogout(ctx context.Context, serverAdapter adapter.ServerAdapter) error {
	status, err := serverAdapter.Logout(ctx)
	if err != nil {
		return err
	}

	fmt.Println("logged out")

	// A freeze does not survive logout on the server. Print the handoff
	// parameters so the next login can carry it back in.
	if !status.Allowed {
		frozenUntil := time.Now().Add(time.Duration(status.RemainingMillis) * time.Millisecond)
		fmt.Printf("account is frozen, log in again with -freeze %s -email <your e-mail>\n",
			strconv.FormatInt(frozenUntil.UnixMilli(), 10))
	}

	return nil
}

func runVersion(ctx context.Context, serverAdapter adapter.ServerAdapter) error {
	version, err := serverAdapter.ServerVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Println(version)

	return nil
}

// userMessage maps adapter sentinels onto the shared wording so the CLI and
// the API speak about failures in the same terms.
func userMessage(err error) string {
	switch {
	case errors.Is(err, adapter.ErrAccountFrozen):
		return app.MsgAccountFrozen
	case errors.Is(err, adapter.ErrUnauthorized):
		return app.MsgWrongPassword
	case errors.Is(err, adapter.ErrBadRequest):
		return app.MsgInvalidDataProvided
	case errors.Is(err, adapter.ErrInternalServerError):
		return app.MsgInternalServerError
	default:
		return err.Error()
	}
}

func millisToDuration(millis int64) time.Duration {
	return (time.Duration(millis) * time.Millisecond).Round(time.Second)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
