package main

import (
	"fmt"

	"nextgen/domain/core"
	"nextgen/domain/engagement"

	"github.com/spf13/cobra"
)

// criteriaFlags mirrors the dashboard query parameters. Flags left unset keep
// the dataset defaults; naming domains or user types turns the matching
// select-all off unless it is passed too.
type criteriaFlags struct {
	domains      []string
	userTypes    []string
	allDomains   bool
	allUserTypes bool
	start        string
	end          string
	minSession   int
	maxSession   int
}

func (f *criteriaFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.domains, "domain", nil, "Domains to include (repeatable)")
	cmd.Flags().StringSliceVar(&f.userTypes, "user-type", nil, "User types to include (repeatable)")
	cmd.Flags().BoolVar(&f.allDomains, "all-domains", false, "Select every domain")
	cmd.Flags().BoolVar(&f.allUserTypes, "all-user-types", false, "Select every user type")
	cmd.Flags().StringVar(&f.start, "start", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Last date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.minSession, "min-session", 0, "Minimum session duration in minutes")
	cmd.Flags().IntVar(&f.maxSession, "max-session", 0, "Maximum session duration in minutes")
}

func (f *criteriaFlags) resolve(cmd *cobra.Command, defaults engagement.FilterCriteria) (engagement.FilterCriteria, error) {
	crit := defaults.Clone()
	changed := cmd.Flags().Changed

	if changed("domain") {
		crit.Domains = nonEmpty(f.domains)
		crit.AllDomains = false
	}
	if changed("user-type") {
		crit.UserTypes = nonEmpty(f.userTypes)
		crit.AllUserTypes = false
	}
	if changed("all-domains") {
		crit.AllDomains = f.allDomains
	}
	if changed("all-user-types") {
		crit.AllUserTypes = f.allUserTypes
	}
	if changed("start") {
		d, err := core.ParseDate(f.start)
		if err != nil {
			return crit, core.NewInvalidCriteriaError("start", fmt.Sprintf("%q: expected YYYY-MM-DD", f.start))
		}
		crit.StartDate = d
	}
	if changed("end") {
		d, err := core.ParseDate(f.end)
		if err != nil {
			return crit, core.NewInvalidCriteriaError("end", fmt.Sprintf("%q: expected YYYY-MM-DD", f.end))
		}
		crit.EndDate = d
	}
	if changed("min-session") {
		crit.MinSession = f.minSession
	}
	if changed("max-session") {
		crit.MaxSession = f.maxSession
	}
	return crit, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
