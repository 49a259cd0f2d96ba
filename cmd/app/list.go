package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"clinic-directory/internal/directory"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// listFlags maps each filter key to its flag name.
var listFlags = map[directory.FilterKey]string{
	directory.KeyClinicID:   "clinic-id",
	directory.KeyClinicName: "name",
	directory.KeyDoctorName: "doctor",
	directory.KeyAddress:    "address",
	directory.KeyPhone:      "phone",
	directory.KeyServices:   "services",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print clinics as a table",
	Long: `Fetch every clinic from the API and print the ones matching all given filters.
--search applies only when no filter is given.

With --server the API narrows the list first: scalar filters are sent as query
parameters and --search runs the API's full text search. Services are always
matched locally.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	apiClient, _, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	session := directory.NewSession(apiClient, log)
	if err := applyListFlags(cmd, session); err != nil {
		return err
	}

	server, err := cmd.Flags().GetBool("server")
	if err != nil {
		return fmt.Errorf("failed to get server flag: %w", err)
	}
	if err := loadList(cmd.Context(), session, server); err != nil {
		return fmt.Errorf("failed to load clinics: %w", err)
	}

	return renderList(cmd.OutOrStdout(), session)
}

// loadList fills the session. Without server the whole collection is fetched
// and filtered locally.
func loadList(ctx context.Context, session *directory.Session, server bool) error {
	switch {
	case !server:
		return session.Load(ctx)
	case session.FreeText() != "":
		return session.SubmitSearch(ctx)
	default:
		return session.LoadMatching(ctx)
	}
}

func applyListFlags(cmd *cobra.Command, session *directory.Session) error {
	search, err := cmd.Flags().GetString("search")
	if err != nil {
		return fmt.Errorf("failed to get search flag: %w", err)
	}
	session.SetSearchText(search)

	for _, key := range directory.Keys() {
		value, err := cmd.Flags().GetString(listFlags[key])
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", listFlags[key], err)
		}
		if strings.TrimSpace(value) != "" {
			session.SetFilter(key, value)
		}
	}
	return nil
}

// renderList prints the search summary and the visible clinics.
func renderList(w io.Writer, session *directory.Session) error {
	if summary := session.Summary(); summary != "" {
		fmt.Fprintf(w, "Filters: %s\n", summary)
	}

	visible := session.Visible()
	if len(visible) == 0 {
		if len(session.Clinics()) == 0 && session.Summary() == "" && session.FreeText() == "" {
			fmt.Fprintln(w, "No clinics yet. Add your first clinic to get started.")
		} else {
			fmt.Fprintln(w, "No clinics match the current search.")
		}
		return nil
	}

	keys := directory.Keys()
	header := make([]any, len(keys))
	for i, k := range keys {
		header[i] = k.Label()
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	for i := range visible {
		row := make([]string, len(keys))
		for j, k := range keys {
			row[j] = cellText(directory.FieldValues(&visible[i], k))
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Fprintf(w, "%d of %d clinics\n", len(visible), len(session.Clinics()))
	return nil
}

func cellText(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func registerListFlags(cmd *cobra.Command) {
	for _, key := range directory.Keys() {
		cmd.Flags().String(listFlags[key], "", "Filter by "+key.Label()+" (substring, case-insensitive)")
	}
	cmd.Flags().String("search", "", "Free text searched across code, name, doctor, address and phone")
	cmd.Flags().Bool("server", false, "Let the API narrow the list before local filtering")
}

func init() {
	registerListFlags(listCmd)
}
