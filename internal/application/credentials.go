package application

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/ports"
)

// StdinPlaceholder is the literal argument value meaning "read this
// credential from standard input".
const StdinPlaceholder = "-"

// PasswordCredentials is the outcome of resolving the username/password
// inputs of a login. Either Anonymous is true, or both Username and
// Password are non-empty; there is no partially-resolved state.
type PasswordCredentials struct {
	Username  string
	Password  string
	Anonymous bool
}

// ResolvePassword reconciles credentials supplied as command-line
// arguments with credentials embedded in the URL. The same field arriving
// non-empty from both sources is an error naming both values. A username
// without a password triggers an interactive prompt; no username and no
// password means anonymous access. A password of "-" is read from stdin.
func ResolvePassword(rawURL, flagUsername, flagPassword string, stdin io.Reader, prompter ports.Prompter) (PasswordCredentials, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PasswordCredentials{}, fmt.Errorf("parse URL: %w", err)
	}

	var urlUsername, urlPassword string
	if parsed.User != nil {
		urlUsername = parsed.User.Username()
		urlPassword, _ = parsed.User.Password()
	}

	username := flagUsername
	if username == "" {
		username = urlUsername
	} else if urlUsername != "" {
		return PasswordCredentials{}, &domain.ConflictingCredentialsError{
			Field:     "username",
			FlagValue: flagUsername,
			URLValue:  urlUsername,
		}
	}

	password := flagPassword
	if password == "" {
		password = urlPassword
	} else if urlPassword != "" {
		return PasswordCredentials{}, &domain.ConflictingCredentialsError{
			Field:     "password",
			FlagValue: flagPassword,
			URLValue:  urlPassword,
		}
	}

	if username == "" {
		if password == "" {
			return PasswordCredentials{Anonymous: true}, nil
		}
		return PasswordCredentials{}, domain.ErrMissingUsername
	}

	if password == StdinPlaceholder {
		password, err = readLine(stdin)
		if err != nil {
			return PasswordCredentials{}, fmt.Errorf("read password from stdin: %w", err)
		}
	}
	if password == "" {
		password, err = prompter.Password("Password: ")
		if err != nil {
			return PasswordCredentials{}, fmt.Errorf("prompt for password: %w", err)
		}
	}
	if password == "" {
		return PasswordCredentials{}, domain.ErrMissingPassword
	}

	return PasswordCredentials{Username: username, Password: password}, nil
}

// ResolveAPIKey obtains a three-part API key from the command-line
// argument, from stdin when the argument is "-", or from an interactive
// prompt when the argument is absent. Exactly one source supplies it.
func ResolveAPIKey(arg string, stdin io.Reader, prompter ports.Prompter) (*domain.APIKey, error) {
	raw := arg
	var err error

	switch arg {
	case StdinPlaceholder:
		raw, err = readLine(stdin)
		if err != nil {
			return nil, fmt.Errorf("read API key from stdin: %w", err)
		}
	case "":
		raw, err = prompter.Line("API key (found in the user preferences page of the web UI): ")
		if err != nil {
			return nil, fmt.Errorf("prompt for API key: %w", err)
		}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.ErrMissingCredentials
	}

	return domain.ParseAPIKey(raw)
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
