package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"skillswap-forms/pkg/validator"
)

func newFormsCmd(setup func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "forms [name]",
		Short: "List registered forms or print one form definition as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range a.registry.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			form, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			return writeJSON(out, form)
		},
	}
}

func newCheckCmd(setup func() (*app, error)) *cobra.Command {
	var (
		pairs  []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "check <form>",
		Short: "Run the submit check for a form against the given field values",
		Example: `  skillforms check login --value email=user@example.com --value password=secret
  skillforms check proposal_create -v skill_offered=1 -v skill_wanted=1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			form, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			values, err := parseValues(pairs)
			if err != nil {
				return err
			}

			res := a.registry.Engine().SubmitCheck(form, values)
			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				printResult(out, form, res)
			}
			if !res.AllValid {
				return errInvalidInput
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "value", "v", nil, "field value as id=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// parseValues 解析 id=value 形式的参数，值中可以包含 '='
func parseValues(pairs []string) (validator.Values, error) {
	values := make(validator.Values, len(pairs))
	for _, p := range pairs {
		id, value, ok := strings.Cut(p, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --value %q: expected id=value", p)
		}
		values[id] = value
	}
	return values, nil
}

func printResult(w io.Writer, form *validator.FormSpec, res validator.SubmitResult) {
	for _, id := range form.FieldIDs() {
		r := res.Results[id]
		if r.Valid {
			fmt.Fprintf(w, "  ok    %s\n", id)
			continue
		}
		fmt.Fprintf(w, "  FAIL  %s: %s\n", id, r.Message)
	}
	if first, ok := res.FirstInvalid(); ok {
		fmt.Fprintf(w, "submission blocked, focus %s\n", first)
		return
	}
	fmt.Fprintln(w, "all fields valid")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
