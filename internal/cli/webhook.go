package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"pet-health-records/internal/adapters/webhook/svix"
	"pet-health-records/internal/platform/httpclient"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newWebhookCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Identity webhook helpers",
	}

	var (
		apiURL string
		file   string
	)
	send := &cobra.Command{
		Use:   "send",
		Short: "Sign an event file with CLERK_WEBHOOK_SECRET and post it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Config.Webhook.Secret == "" {
				return errors.New("CLERK_WEBHOOK_SECRET is required")
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			// the body is sent compacted, so sign the compacted form
			var buf bytes.Buffer
			if err := json.Compact(&buf, raw); err != nil {
				return fmt.Errorf("event file: %w", err)
			}
			payload := buf.Bytes()

			v, err := svix.New(app.Config.Webhook.Secret)
			if err != nil {
				return err
			}
			headers, err := v.SignedHeaders("msg_"+uuid.NewString(), time.Now(), payload)
			if err != nil {
				return err
			}

			client, err := httpclient.New(apiURL, 0)
			if err != nil {
				return err
			}
			client.Headers = map[string]string{}
			for k := range headers {
				client.Headers[k] = headers.Get(k)
			}

			if err := client.DoJSON(cmd.Context(), http.MethodPost, "/webhooks/identity", json.RawMessage(payload), nil); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "delivered")
			return err
		},
	}
	send.Flags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API base URL")
	send.Flags().StringVarP(&file, "file", "f", "", "event JSON file")
	_ = send.MarkFlagRequired("file")

	cmd.AddCommand(send)
	return cmd
}
