package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"pet-health-records/internal/client/api"
	"pet-health-records/internal/client/petcache"
	"pet-health-records/internal/client/prefs"
	"pet-health-records/internal/middleware"
	"pet-health-records/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

type petsOptions struct {
	apiURL    string
	token     string
	debugUser string
	prefsPath string
}

// session bundles what a client command needs: the API client and the pet
// cache with its durable selection.
type session struct {
	api   *api.Client
	store *petcache.Store
	prefs *prefs.Store
}

func (o *petsOptions) open(ctx context.Context, app *App) (*session, error) {
	hc, err := httpclient.New(o.apiURL, 0)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.TrimSpace(o.token) != "":
		tok := strings.TrimSpace(o.token)
		hc.Token = func(context.Context) (string, error) { return tok, nil }
	case strings.TrimSpace(o.debugUser) != "":
		hc.Headers = map[string]string{middleware.DebugUserHeader: strings.TrimSpace(o.debugUser)}
	default:
		return nil, errors.New("--token or --debug-user is required")
	}

	path := o.prefsPath
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(dir, "pethealth")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "prefs.db")
	}
	p, err := prefs.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	client := api.New(hc)
	return &session{api: client, store: petcache.New(client, p, app.Log), prefs: p}, nil
}

func (s *session) Close() error { return s.prefs.Close() }

func newPetsCommand(app *App) *cobra.Command {
	opts := &petsOptions{}

	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Client for the pets API with a remembered selected pet",
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "http://localhost:8080", "API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("PETHEALTH_TOKEN"), "session bearer token")
	cmd.PersistentFlags().StringVar(&opts.debugUser, "debug-user", "", "identity reference sent as X-Debug-User-ID (dev servers)")
	cmd.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "preferences database (default: user config dir)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pets; * marks the selected one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.store.Mount(cmd.Context()); err != nil {
				return err
			}
			return printPets(cmd.OutOrStdout(), s.store)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "select <pet-id>",
		Short: "Remember a pet as the selected one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			for _, p := range s.store.Pets() {
				if p.ID == args[0] {
					if err := s.store.Select(cmd.Context(), &p); err != nil {
						return err
					}
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "selected %s (%s)\n", p.Name, p.ID)
					return err
				}
			}
			return fmt.Errorf("pet %s not found", args[0])
		},
	})

	var add api.PetInput
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a pet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			add.Species = strings.ToUpper(add.Species)
			p, err := s.api.CreatePet(cmd.Context(), add)
			if err != nil {
				return err
			}
			if err := s.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", p.Name, p.ID)
			return err
		},
	}
	addCmd.Flags().StringVar(&add.Name, "name", "", "pet name")
	addCmd.Flags().StringVar(&add.Species, "species", "DOG", "DOG, CAT or OTHER")
	addCmd.Flags().StringVar(&add.Breed, "breed", "", "breed")
	addCmd.Flags().StringVar(&add.BirthDate, "birth-date", "", "YYYY-MM-DD")
	addCmd.Flags().BoolVar(&add.IsNeutered, "neutered", false, "is neutered")
	_ = addCmd.MarkFlagRequired("name")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <pet-id>",
		Short: "Delete a pet and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.api.DeletePet(cmd.Context(), args[0]); err != nil {
				if httpclient.StatusCode(err) == 404 {
					return fmt.Errorf("pet %s not found", args[0])
				}
				return err
			}
			if err := s.store.Mount(cmd.Context()); err != nil {
				return err
			}
			// the fallback may have moved the selection; persist it
			sel, ok := s.store.Selected()
			if ok {
				err = s.store.Select(cmd.Context(), &sel)
			} else {
				err = s.store.Select(cmd.Context(), nil)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	})

	return cmd
}

func printPets(w io.Writer, store *petcache.Store) error {
	sel, hasSel := store.Selected()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tSPECIES")
	for _, p := range store.Pets() {
		mark := ""
		if hasSel && p.ID == sel.ID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, p.ID, p.Name, p.Species)
	}
	return tw.Flush()
}
