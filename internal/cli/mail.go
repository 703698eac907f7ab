package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fixora/backend/core/email"
	"github.com/fixora/backend/core/email/templates"
	"github.com/fixora/backend/internal/app"
	"github.com/fixora/backend/internal/transport"
)

// ErrSendFailed is returned by send-test when the result is not a success.
var ErrSendFailed = errors.New("test email was not sent")

func newMailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Inspect and exercise the email stack",
	}
	cmd.AddCommand(
		newMailVerifyCommand(),
		newMailRenderCommand(),
		newMailSendTestCommand(),
	)
	return cmd
}

func newMailVerifyCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Build the transport and wait for its connectivity check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			res := transport.Build(cmd.Context(), rt.cfg.Transport, transport.WithLogger(rt.log))
			if !res.Available() {
				return fmt.Errorf("email transport %s: %s", res.Provider, res.State)
			}
			if res.Verification == nil {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s transport configured, verification not supported\n", res.Provider)
				return err
			}
			if err := res.Verification.AwaitWithTimeout(timeout); err != nil {
				return fmt.Errorf("email transport %s verification failed: %w", res.Provider, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s transport verified\n", res.Provider)
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "How long to wait for the check")
	return cmd
}

func newMailRenderCommand() *cobra.Command {
	var vars map[string]string

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render an email template to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			tv := make(templates.Vars, len(vars)+1)
			tv["year"] = time.Now().Year()
			for k, v := range vars {
				tv[k] = v
			}

			html, err := templates.NewRenderer(rt.cfg.Templates).Render(cmd.Context(), templates.Name(args[0]), tv)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		},
	}
	cmd.Flags().StringToStringVar(&vars, "var", nil, "Template variable as key=value (repeatable)")
	return cmd
}

func newMailSendTestCommand() *cobra.Command {
	var (
		to       string
		name     string
		kind     string
		waitTime time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Send a sample transactional email and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), waitTime)
			defer cancel()

			a := app.New(ctx, rt.cfg, rt.log)

			var res email.Result
			switch kind {
			case "verification":
				res = a.Mailer.SendVerificationEmail(ctx, to, "test-token", name)
			case "reset":
				res = a.Mailer.SendPasswordResetEmail(ctx, to, "test-token", name)
			case "otp":
				res = a.Mailer.SendOTPEmail(ctx, to, "123456", name)
			default:
				return fmt.Errorf("unknown email kind %q (verification, reset, otp)", kind)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Success {
				return ErrSendFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&name, "name", "Fixora tester", "Recipient display name")
	cmd.Flags().StringVar(&kind, "kind", "verification", "Email to send: verification, reset, otp")
	cmd.Flags().DurationVar(&waitTime, "timeout", 30*time.Second, "Send timeout")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
