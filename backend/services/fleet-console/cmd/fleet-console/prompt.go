package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"gestaocombustivel/backend/services/fleet-console/internal/auth"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(out, "senha: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("read password: empty input")
	}
	return line, nil
}

type sessionView interface {
	IsAuthenticated() bool
	Session() session.Session
	TokenInfo() (*auth.TokenInfo, error)
}

func printWhoami(out io.Writer, view sessionView) error {
	if !view.IsAuthenticated() {
		fmt.Fprintln(out, "not signed in")
		return nil
	}

	sess := view.Session()
	if u := sess.User; u != nil {
		fmt.Fprintf(out, "nome:        %s\n", u.Name)
		fmt.Fprintf(out, "tipoUsuario: %s\n", u.Role)
		fmt.Fprintf(out, "empresaId:   %s\n", u.CompanyID)
	}

	info, err := view.TokenInfo()
	if err != nil {
		// Opaque tokens carry nothing more to show.
		return nil
	}
	if info.Subject != "" {
		fmt.Fprintf(out, "subject:     %s\n", info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		status := "valid"
		if info.Expired(time.Now()) {
			status = "expired"
		}
		fmt.Fprintf(out, "expira:      %s (%s)\n", info.ExpiresAt.Local().Format(time.RFC3339), status)
	}
	return nil
}
