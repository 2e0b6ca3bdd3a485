package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ganot/unolims/internal/app"
	"github.com/ganot/unolims/internal/screen"
)

const prompt = "unolims> "

// shell reads one command per line until quit or end of input.
type shell struct {
	*session
	in io.Reader
}

func newShell(a *app.App, in io.Reader, out io.Writer) *shell {
	return &shell{session: newSession(a, out), in: in}
}

func (sh *shell) run(ctx context.Context) error {
	sh.println(sh.cat().T("app.title"))
	sh.println(sh.cat().T("nav.help"))

	sc := bufio.NewScanner(sh.in)
	for {
		if _, err := io.WriteString(sh.out, prompt); err != nil {
			return err
		}
		if !sc.Scan() {
			return sc.Err()
		}
		quit, err := sh.exec(ctx, sc.Text())
		if err != nil && !errors.Is(err, errSubmitRejected) {
			sh.println("! " + err.Error())
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// exec runs one line. Failures are returned for the caller to print; they
// never end the shell.
func (sh *shell) exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		sh.println(sh.cat().T("nav.help"))
	case "routes":
		sh.println(strings.Join(screen.Routes(), "\n"))
	case "open", "o":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: open <route> [id] [key=value...]")
		}
		v, err := sh.open(ctx, args[0], parseParams(args[1:]))
		if v == nil {
			if errors.Is(err, screen.ErrUnknownRoute) {
				return false, nil
			}
			return false, err
		}
		// Load failures are part of the rendered view.
		return false, v.Render(sh.out)
	case "back", "b":
		return false, sh.back()
	case "show", "s":
		return false, sh.show()
	case "set":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: set <field> <value>")
		}
		// The value keeps its inner spaces.
		value := ""
		if parts := strings.SplitN(line, " ", 3); len(parts) == 3 {
			value = strings.TrimSpace(parts[2])
		}
		return false, sh.set(args[0], value)
	case "submit":
		return false, sh.submit(ctx)
	case "export":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: export <file.xlsx>")
		}
		return false, sh.export(args[0])
	case "lang":
		return false, sh.lang(ctx, args)
	default:
		sh.println(sh.cat().Format("nav.unknownCommand", map[string]string{"command": cmd}))
	}
	return false, nil
}

func (sh *shell) lang(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
	case args[0] == "toggle":
		if _, err := sh.app.ToggleLanguage(ctx); err != nil {
			return err
		}
	default:
		if _, err := sh.app.SetLanguage(ctx, args[0]); err != nil {
			return err
		}
	}
	return printLanguage(sh.out, sh.cat())
}

// parseParams reads key=value pairs; a bare word is the id.
func parseParams(args []string) screen.Params {
	params := screen.Params{}
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok {
			params[k] = v
		} else {
			params["id"] = a
		}
	}
	return params
}
