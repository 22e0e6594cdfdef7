package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/friendsmeet/pkg/api"
)

var errEmptyToken = errors.New("no token: run 'meetupctl login' and set MEETUP_TOKEN or --token")

func (a *app) newLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			resp, err := a.authClient().Login(cmd.Context(), connect.NewRequest(&api.LoginRequest{
				Email:    email,
				Password: password,
			}))
			if err != nil {
				return describeError(err)
			}

			a.printer.Success("Logged in as %s", resp.Msg.User.DisplayName)
			a.printer.Plain("%s", resp.Msg.Token)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) newGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "groups",
		Aliases: []string{"ls"},
		Short:   "List groups",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}

			resp, err := a.meetupClient().ListGroups(cmd.Context(), connect.NewRequest(&api.ListGroupsRequest{}))
			if err != nil {
				return describeError(err)
			}
			if len(resp.Msg.Groups) == 0 {
				a.printer.Info("No groups yet")
				return nil
			}

			rows := make([][]string, 0, len(resp.Msg.Groups))
			for _, g := range resp.Msg.Groups {
				rows = append(rows, []string{g.ID, g.Name, formatUnix(g.CreatedAt)})
			}
			return a.printer.Table([]string{"ID", "Name", "Created"}, rows)
		},
	}
}

func (a *app) newGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <group-id>",
		Short: "Regenerate a group's meetup suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}

			resp, err := a.meetupClient().GenerateSuggestions(cmd.Context(), connect.NewRequest(&api.GenerateSuggestionsRequest{
				GroupID: args[0],
			}))
			if err != nil {
				return describeError(err)
			}

			a.printer.Success("Generated %d suggestions", len(resp.Msg.Suggestions))
			return a.printSuggestions(resp.Msg.Suggestions)
		},
	}
}

func (a *app) newSuggestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions <group-id>",
		Short: "Show a group's stored suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}

			resp, err := a.meetupClient().ListSuggestions(cmd.Context(), connect.NewRequest(&api.ListSuggestionsRequest{
				GroupID: args[0],
			}))
			if err != nil {
				return describeError(err)
			}
			if len(resp.Msg.Suggestions) == 0 {
				a.printer.Info("No suggestions yet; run 'meetupctl generate %s'", args[0])
				return nil
			}
			return a.printSuggestions(resp.Msg.Suggestions)
		},
	}
}

func (a *app) printSuggestions(suggestions []*api.Suggestion) error {
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			s.Date,
			s.Time,
			s.Location,
			strconv.Itoa(s.Score),
		})
	}
	return a.printer.Table([]string{"Rank", "Date", "Time", "Location", "Score"}, rows)
}

func (a *app) requireToken() error {
	if a.v.GetString("token") == "" {
		return errEmptyToken
	}
	return nil
}

// describeError turns a Connect error into a short user-facing message.
func describeError(err error) error {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err
	}
	switch connectErr.Code() {
	case connect.CodeUnauthenticated:
		return fmt.Errorf("not logged in or token expired: %s", connectErr.Message())
	case connect.CodeNotFound:
		return fmt.Errorf("not found: %s", connectErr.Message())
	case connect.CodeFailedPrecondition:
		return fmt.Errorf("cannot generate yet: %s", connectErr.Message())
	default:
		return fmt.Errorf("%s: %s", connectErr.Code(), connectErr.Message())
	}
}

func formatUnix(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(sec, 0).Local().Format("2006-01-02 15:04")
}
