package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/dmitrijs2005/invoicedash/internal/client/client"
	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/netx"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/spf13/cobra"
)

// getPassword, readFile and upload are indirections used to facilitate testing.
var (
	getPassword = GetPassword
	readFile    = os.ReadFile
	upload      = netx.UploadToPresignedURL
)

func (a *App) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashctl",
		Short:         "Operate the invoice dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "server config file (JSON or YAML)")
	cmd.PersistentFlags().StringVarP(&a.addr, "addr", "a", "127.0.0.1:50051", "gRPC address of the dashboard server")

	cmd.AddCommand(a.newMigrateCmd())
	cmd.AddCommand(a.newUserCmd())
	cmd.AddCommand(a.newCustomerCmd())
	cmd.AddCommand(a.newPingCmd())
	cmd.AddCommand(a.newInvoiceCmd())
	return cmd
}

func (a *App) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.openBackend(cmd.Context(), a.configPath)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func (a *App) newUserCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage dashboard users"}

	var email, name, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user that can sign in to the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, f := range []struct {
				dst   *string
				label string
			}{{&email, "Email"}, {&name, "Name"}} {
				if *f.dst != "" {
					continue
				}
				v, err := ReadLine(a.reader, out, f.label)
				if err != nil {
					return err
				}
				*f.dst = v
			}

			pw := []byte(password)
			if password == "" {
				var err error
				if pw, err = getPassword(out, "Password"); err != nil {
					return err
				}
			}
			defer common.WipeByteArray(pw)

			res := forms.RegisterSchema.Validate(url.Values{
				"email":            {email},
				"name":             {name},
				"password":         {string(pw)},
				"confirm-password": {string(pw)},
			})
			if !res.OK {
				return validationError(res.Message, res.FieldErrors)
			}

			hash, err := auth.HashPassword(res.Data.Password)
			if err != nil {
				return err
			}

			b, err := a.openBackend(cmd.Context(), a.configPath)
			if err != nil {
				return err
			}
			defer b.Close()

			if _, err := b.AddUser(cmd.Context(), res.Data.Email, res.Data.Name, hash); err != nil {
				if errors.Is(err, common.ErrorConflict) {
					return fmt.Errorf("user %s already exists", res.Data.Email)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s created.\n", res.Data.Email)
			return nil
		},
	}
	add.Flags().StringVar(&email, "email", "", "email address (prompted when omitted)")
	add.Flags().StringVar(&name, "name", "", "display name (prompted when omitted)")
	add.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	cmd.AddCommand(add)
	return cmd
}

func (a *App) newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "customer", Short: "Manage customers through the server"}

	var email, file string
	avatar := &cobra.Command{
		Use:   "avatar <customer-id>",
		Short: "Upload a customer image to object storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(file)
			if err != nil {
				return err
			}
			contentType := http.DetectContentType(data)

			r, err := a.signIn(cmd, email)
			if err != nil {
				return err
			}
			defer r.Close()

			up, err := r.CustomerAvatar(cmd.Context(), args[0], contentType)
			switch {
			case errors.Is(err, client.ErrNotFound):
				return fmt.Errorf("customer %s not found", args[0])
			case err != nil:
				return err
			}

			if err := upload(cmd.Context(), up.UploadURL, contentType, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", up.ImageURL)
			return nil
		},
	}
	avatar.Flags().StringVarP(&file, "file", "f", "", "image file (png, jpeg, webp or gif)")
	avatar.Flags().StringVar(&email, "email", "", "sign in as this user")
	_ = avatar.MarkFlagRequired("file")
	_ = avatar.MarkFlagRequired("email")

	cmd.AddCommand(avatar)
	return cmd
}

func (a *App) newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the gRPC server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.dialRemote(a.addr)
			if err != nil {
				return err
			}
			defer r.Close()

			if err := r.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func (a *App) newInvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "invoice", Short: "Create or delete invoices through the server"}

	var email, customer, amount, status string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice dated today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, email, func(r Remote) (*client.Outcome, error) {
				return r.CreateInvoice(cmd.Context(), customer, amount, status)
			})
		},
	}
	create.Flags().StringVar(&customer, "customer", "", "customer id")
	create.Flags().StringVar(&amount, "amount", "", "amount in dollars, e.g. 12.50")
	create.Flags().StringVar(&status, "status", "pending", "pending or paid")

	create.Flags().StringVar(&email, "email", "", "sign in as this user")
	_ = create.MarkFlagRequired("email")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, email, func(r Remote) (*client.Outcome, error) {
				return r.DeleteInvoice(cmd.Context(), args[0])
			})
		},
	}

	del.Flags().StringVar(&email, "email", "", "sign in as this user")
	_ = del.MarkFlagRequired("email")

	cmd.AddCommand(create, del)
	return cmd
}

// signIn prompts for the password of email and returns a signed-in remote.
// The caller closes it.
func (a *App) signIn(cmd *cobra.Command, email string) (Remote, error) {
	pw, err := getPassword(cmd.OutOrStdout(), "Password")
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)

	r, err := a.dialRemote(a.addr)
	if err != nil {
		return nil, err
	}

	login, err := r.Login(cmd.Context(), email, pw)
	if err == nil && login.Kind == "failure" {
		err = validationError(login.Message, nil)
	}
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// withSession signs in as email, runs fn and reports its outcome.
func (a *App) withSession(cmd *cobra.Command, email string, fn func(Remote) (*client.Outcome, error)) error {
	r, err := a.signIn(cmd, email)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := fn(r)
	if err != nil {
		return err
	}
	if out.Kind == "failure" {
		return validationError(out.Message, out.Errors)
	}
	printOutcome(cmd.OutOrStdout(), out)
	return nil
}

func printOutcome(w io.Writer, out *client.Outcome) {
	switch {
	case out.Message != "":
		fmt.Fprintln(w, out.Message)
	case out.Location != "":
		fmt.Fprintf(w, "Done. See %s\n", out.Location)
	default:
		fmt.Fprintln(w, "Done.")
	}
}

// validationError renders field errors in a stable order.
func validationError(msg string, fields map[string][]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(msg)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, strings.Join(fields[name], "; "))
	}
	return errors.New(b.String())
}
