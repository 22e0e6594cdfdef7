// Package cli implements meetupctl, a command-line client for the Friends
// Meet server.
package cli

import (
	"io"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/friendsmeet/internal/middleware"
	"github.com/mmynk/friendsmeet/pkg/api/apiconnect"
)

const defaultServer = "http://localhost:8080"

// app carries the settings shared by every command.
type app struct {
	v          *viper.Viper
	httpClient connect.HTTPClient
	printer    *printer
}

// NewRootCommand builds the meetupctl command tree. Output goes to out.
// Flags fall back to the MEETUP_SERVER and MEETUP_TOKEN env vars.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{
		v:          viper.New(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	root := &cobra.Command{
		Use:   "meetupctl",
		Short: "Friends Meet command-line client",
		Long: `meetupctl talks to a Friends Meet server.

Example usage:
  meetupctl login --email alice@example.com --password secret
  export MEETUP_TOKEN=<token>
  meetupctl groups
  meetupctl generate <group-id>
  meetupctl suggestions <group-id>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			noColor, _ := cmd.Flags().GetBool("no-color")
			a.printer = newPrinter(cmd.OutOrStdout(), !noColor)
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().String("server", defaultServer, "server base URL (env MEETUP_SERVER)")
	root.PersistentFlags().String("token", "", "bearer token from login (env MEETUP_TOKEN)")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	a.v.SetEnvPrefix("MEETUP")
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = a.v.BindPFlag("token", root.PersistentFlags().Lookup("token"))

	root.AddCommand(
		a.newLoginCommand(),
		a.newGroupsCommand(),
		a.newGenerateCommand(),
		a.newSuggestionsCommand(),
	)
	return root
}

func (a *app) serverURL() string {
	return strings.TrimRight(a.v.GetString("server"), "/")
}

func (a *app) authClient() apiconnect.AuthServiceClient {
	return apiconnect.NewAuthServiceClient(a.httpClient, a.serverURL())
}

func (a *app) meetupClient() apiconnect.MeetupServiceClient {
	return apiconnect.NewMeetupServiceClient(a.httpClient, a.serverURL(),
		connect.WithInterceptors(middleware.BearerToken(a.v.GetString("token"))),
	)
}
