package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pankaj-dahiya-devops/costctl/internal/output"
	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// DoctorResult is the structured output of costctl doctor. It can be
// serialised to JSON via --format=json or rendered as a human-readable table
// (default).
type DoctorResult struct {
	AWS struct {
		Profile           string `json:"profile,omitempty"`
		Region            string `json:"region,omitempty"`
		Endpoint          string `json:"endpoint,omitempty"`
		Credentials       bool   `json:"credentials_ok"`
		Identity          bool   `json:"identity_ok"`
		AccountID         string `json:"account_id,omitempty"`
		CostExplorer      bool   `json:"cost_explorer_ok"`
		CostExplorerSkip  bool   `json:"cost_explorer_skipped,omitempty"`
		Error             string `json:"error,omitempty"`
		IdentityError     string `json:"identity_error,omitempty"`
		CostExplorerError string `json:"cost_explorer_error,omitempty"`
	} `json:"aws"`

	Config struct {
		Path    string   `json:"path"`
		Present bool     `json:"present"`
		Valid   bool     `json:"valid"`
		Errors  []string `json:"errors,omitempty"`
	} `json:"config"`

	Profiles []string `json:"profiles,omitempty"`

	OverallHealthy bool `json:"overall_healthy"`
}

// doctorInput gathers what collectDoctorResult needs from the command.
type doctorInput struct {
	opts       common.LoadOptions
	configPath string
	configErr  error
	credsErr   error
	skipCE     bool
}

func newDoctorCmd(a *app) *cobra.Command {
	var (
		format string
		skipCE bool
	)
	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Run environment diagnostics",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerateConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := doctorInput{
				opts:       a.loadOptions(),
				configPath: a.configFile,
				configErr:  a.configErr,
				credsErr:   a.credsErr,
				skipCE:     skipCE,
			}
			result, err := runDoctor(cmd.Context(), a.provider, in, cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}
			if !result.OverallHealthy {
				return errSilent
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", `Output format: "table" or "json"`)
	cmd.Flags().BoolVar(&skipCE, "skip-ce-call", false, "Do not call Cost Explorer (each call is billed)")
	return cmd
}

// runDoctor collects all diagnostic results, renders them to w in the
// requested format, and returns the result.
// The returned error covers only rendering failures (e.g. JSON encode error).
// Callers must inspect result.OverallHealthy to determine whether the
// environment is healthy.
func runDoctor(ctx context.Context, provider common.AWSClientProvider, in doctorInput, w io.Writer, format string) (DoctorResult, error) {
	result := collectDoctorResult(ctx, provider, in)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return result, fmt.Errorf("encode doctor result: %w", err)
		}
	default:
		renderDoctorTable(result, w)
	}

	return result, nil
}

// collectDoctorResult runs all environment checks and populates a
// DoctorResult. It performs no rendering.
func collectDoctorResult(ctx context.Context, provider common.AWSClientProvider, in doctorInput) DoctorResult {
	var result DoctorResult

	// AWS: configuration → credentials → STS identity and Cost Explorer call.
	result.AWS.Profile = in.opts.Profile
	var profile *common.ProfileConfig
	err := in.credsErr
	if err == nil {
		profile, err = provider.LoadProfile(ctx, in.opts)
	}
	if err != nil {
		result.AWS.Error = err.Error()
	} else {
		result.AWS.Region = profile.Region
		result.AWS.Endpoint = profile.Endpoint
		if err := checkCredentials(ctx, profile.Config); err != nil {
			result.AWS.Error = err.Error()
		} else {
			result.AWS.Credentials = true
			checkServices(ctx, provider, profile, in.skipCE, &result)
		}
	}

	// Config: the file is optional, but a broken one is reported.
	result.Config.Path = in.configPath
	if in.configPath != "" {
		if _, statErr := os.Stat(in.configPath); statErr == nil {
			result.Config.Present = true
		} else if !os.IsNotExist(statErr) {
			result.Config.Present = true
			result.Config.Errors = append(result.Config.Errors, statErr.Error())
		}
	}
	if in.configErr != nil {
		result.Config.Errors = append(result.Config.Errors, in.configErr.Error())
	}
	result.Config.Valid = len(result.Config.Errors) == 0

	if names, err := provider.ListProfiles(); err == nil {
		result.Profiles = names
	}

	result.OverallHealthy = result.AWS.Credentials &&
		result.AWS.Identity &&
		(result.AWS.CostExplorer || result.AWS.CostExplorerSkip) &&
		result.Config.Valid

	return result
}

func checkCredentials(ctx context.Context, cfg aws.Config) error {
	if cfg.Credentials == nil {
		return fmt.Errorf("no credentials provider configured")
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("retrieve credentials: %w", err)
	}
	return nil
}

// checkServices resolves the caller identity and, unless skipped, makes one
// minimal Cost Explorer call. Both run concurrently and write disjoint
// fields of result.
func checkServices(ctx context.Context, provider common.AWSClientProvider, profile *common.ProfileConfig, skipCE bool, result *DoctorResult) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accountID, err := provider.ResolveAccountID(gctx, profile)
		if err != nil {
			result.AWS.IdentityError = err.Error()
			return nil
		}
		result.AWS.Identity = true
		result.AWS.AccountID = accountID
		return nil
	})

	if skipCE {
		result.AWS.CostExplorerSkip = true
	} else {
		g.Go(func() error {
			_, err := profile.Clients.CostExplorer.GetAnomalyMonitors(gctx, &ce.GetAnomalyMonitorsInput{
				MaxResults: aws.Int32(1),
			})
			if err != nil {
				result.AWS.CostExplorerError = err.Error()
				return nil
			}
			result.AWS.CostExplorer = true
			return nil
		})
	}

	_ = g.Wait()
}

// renderDoctorTable writes the human-readable diagnostic output from result to w.
func renderDoctorTable(result DoctorResult, w io.Writer) {
	fmt.Fprintln(w, "Environment Diagnostics")

	if result.AWS.Profile != "" {
		fmt.Fprintf(w, "\nAWS (profile: %s):\n", result.AWS.Profile)
	} else {
		fmt.Fprintln(w, "\nAWS:")
	}
	if !result.AWS.Credentials {
		doctorPrint(w, "Credentials", "FAIL", result.AWS.Error)
		doctorPrint(w, "STS Identity", "FAIL", "skipped")
		doctorPrint(w, "Cost Explorer", "FAIL", "skipped")
	} else {
		doctorPrint(w, "Credentials", "OK", "")
		if result.AWS.Identity {
			doctorPrint(w, "STS Identity", "OK", "Account: "+result.AWS.AccountID)
		} else {
			doctorPrint(w, "STS Identity", "FAIL", result.AWS.IdentityError)
		}
		switch {
		case result.AWS.CostExplorerSkip:
			doctorPrint(w, "Cost Explorer", "SKIPPED", result.AWS.Endpoint)
		case result.AWS.CostExplorer:
			doctorPrint(w, "Cost Explorer", "OK", result.AWS.Endpoint)
		default:
			doctorPrint(w, "Cost Explorer", "FAIL", result.AWS.CostExplorerError)
		}
	}

	fmt.Fprintln(w, "\nConfig:")
	if !result.Config.Present {
		doctorPrint(w, "config.yaml present", "Not found (optional)", result.Config.Path)
	} else {
		doctorPrint(w, "config.yaml present", "YES", result.Config.Path)
	}
	if result.Config.Valid {
		doctorPrint(w, "Config valid", "OK", "")
	} else {
		for _, e := range result.Config.Errors {
			doctorPrint(w, "Config valid", "FAIL", e)
		}
	}

	if len(result.Profiles) > 0 {
		fmt.Fprintln(w, "\nProfiles:")
		rows := make([]map[string]any, 0, len(result.Profiles))
		for _, name := range result.Profiles {
			active := ""
			if name == result.AWS.Profile || (result.AWS.Profile == "" && name == "default") {
				active = "*"
			}
			rows = append(rows, map[string]any{"profile": name, "active": active})
		}
		output.RenderTable(w, rows)
	}
}

// doctorPrint writes a single diagnostic check line to w.
// When detail is non-empty it is appended in parentheses.
func doctorPrint(w io.Writer, label, status, detail string) {
	if detail != "" {
		fmt.Fprintf(w, "  %s: %s (%s)\n", label, status, detail)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", label, status)
	}
}
