package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/screen"
	"github.com/spf13/cobra"
)

type openOptions struct {
	params map[string]string
	sets   []string
	submit bool
	xlsx   string
}

func newOpenCmd(c *cli) *cobra.Command {
	opts := openOptions{}
	cmd := &cobra.Command{
		Use:   "open <route> [id]",
		Short: "Open a screen and print it",
		Example: `  unolims open requesters --xlsx requesters.xlsx
  unolims open requester 12345678000199
  unolims open requester.new --set cnpj=12345678000199 --set cep=50000000 --submit`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: screen.Routes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := screen.Params{}
			for k, v := range opts.params {
				params[k] = v
			}
			if len(args) == 2 {
				params["id"] = args[1]
			}
			return openRoute(cmd.Context(), c, cmd.OutOrStdout(), args[0], params, opts)
		},
	}
	cmd.Flags().StringToStringVarP(&opts.params, "param", "p", nil, "route parameter key=value")
	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "form field name=value; the value may contain commas")
	cmd.Flags().BoolVar(&opts.submit, "submit", false, "submit the form after setting fields")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "export the list to this XLSX file")
	return cmd
}

func openRoute(ctx context.Context, c *cli, out io.Writer, route string, params screen.Params, opts openOptions) error {
	s := newSession(c.app, out)
	v, loadErr := s.open(ctx, route, params)
	if v == nil {
		return loadErr
	}

	if _, isForm := v.(*screen.Form); isForm {
		// A failed choice list leaves its field free-form; the form still works.
		loadErr = nil
		for _, kv := range opts.sets {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set %q: expected name=value", kv)
			}
			if err := s.set(name, value); err != nil {
				return err
			}
		}
		if opts.submit {
			return s.submit(ctx)
		}
	} else if len(opts.sets) > 0 || opts.submit {
		s.println(s.cat().T("nav.notForm"))
		return errNotForm
	}

	if err := s.show(); err != nil {
		return err
	}
	if opts.xlsx != "" {
		if err := s.export(opts.xlsx); err != nil {
			return err
		}
	}
	return loadErr
}

func newShellCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Navigate interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newShell(c.app, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "routes",
		Short:       "List the screens that can be opened",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noApp: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, r := range screen.Routes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newLangCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show the stored interface language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printLanguage(cmd.OutOrStdout(), c.catalog())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <language>",
		Short: "Store the interface language (english, portuguese or a tag like pt-BR)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.SetLanguage(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printLanguage(cmd.OutOrStdout(), c.catalog())
		},
	}, &cobra.Command{
		Use:   "toggle",
		Short: "Switch between English and Portuguese",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := c.app.ToggleLanguage(cmd.Context()); err != nil {
				return err
			}
			return printLanguage(cmd.OutOrStdout(), c.catalog())
		},
	})
	return cmd
}

func printLanguage(w io.Writer, cat i18n.Catalog) error {
	_, err := fmt.Fprintln(w, cat.Format("language.current", map[string]string{
		"lang": cat.T("language." + string(cat.Language())),
	}))
	return err
}

func newQRCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "qr <item-id>",
		Short: "Write the QR label of an analysis item to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := screen.Params{"id": args[0], "out": out}
			return openRoute(cmd.Context(), c, cmd.OutOrStdout(), screen.RouteItemQR, params, openOptions{})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "PNG path (default item-<id>.png)")
	return cmd
}

func newScanCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>",
		Short: "Read an item QR label from an image and open the item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return openRoute(cmd.Context(), c, cmd.OutOrStdout(), screen.RouteScan, screen.Params{"image": args[0]}, openOptions{})
		},
	}
}
