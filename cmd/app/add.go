package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"clinic-directory/internal/converter"
	"clinic-directory/internal/delivery/dto"
	"clinic-directory/pkg/validator"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a clinic through the API",
	Long: `Register a new clinic. Every field is required; --services takes a
comma-separated list, for example "Dental, X-Ray".`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, _ []string) error {
	req, err := addRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	apiClient, _, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	created, err := apiClient.AddClinic(cmd.Context(), converter.CreateClinicRequestToEntity(req))
	if err != nil {
		return fmt.Errorf("failed to add clinic: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Clinic %s (%s) added with id %s\n", created.Name, created.ClinicCode, created.ID)
	return nil
}

// addRequestFromFlags builds and validates the create request locally so that
// the user sees every missing field at once.
func addRequestFromFlags(cmd *cobra.Command) (*dto.CreateClinicRequest, error) {
	values := make(map[string]string, 6)
	for _, name := range []string{"clinic-id", "name", "doctor", "address", "phone", "services"} {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		values[name] = v
	}

	req := &dto.CreateClinicRequest{
		ClinicCode: values["clinic-id"],
		Name:       values["name"],
		DoctorName: values["doctor"],
		Address:    values["address"],
		Phone:      values["phone"],
		Services:   dto.ParseServices(values["services"]),
	}
	req.Normalize()

	v := validator.NewValidator()
	if err := v.Validate(req); err != nil {
		fields := v.FormatValidationErrors(err)
		messages := make([]string, 0, len(fields))
		for _, msg := range fields {
			messages = append(messages, msg)
		}
		sort.Strings(messages)
		return nil, errors.New("invalid clinic: " + strings.Join(messages, "; "))
	}
	return req, nil
}

func registerAddFlags(cmd *cobra.Command) {
	cmd.Flags().String("clinic-id", "", "Clinic code, unique (required)")
	cmd.Flags().String("name", "", "Clinic name (required)")
	cmd.Flags().String("doctor", "", "Doctor name (required)")
	cmd.Flags().String("address", "", "Address (required)")
	cmd.Flags().String("phone", "", "Phone number (required)")
	cmd.Flags().String("services", "", "Comma-separated services (required)")
}

func init() {
	registerAddFlags(addCmd)
}
