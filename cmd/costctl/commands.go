package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/costctl/internal/config"
	"github.com/pankaj-dahiya-devops/costctl/internal/invoke"
	"github.com/pankaj-dahiya-devops/costctl/internal/logging"
	"github.com/pankaj-dahiya-devops/costctl/internal/operations"
	"github.com/pankaj-dahiya-devops/costctl/internal/output"
	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
	"github.com/pankaj-dahiya-devops/costctl/internal/version"
)

// errSilent makes main exit non-zero without printing anything further;
// the command has already reported the problem.
var errSilent = errors.New("silent failure")

// annotationTolerateConfig marks commands that still run when the
// configuration file or the credential flags are invalid, so they can
// report it.
const annotationTolerateConfig = "costctl/tolerate-config-error"

// app carries state shared by every command of one invocation.
type app struct {
	provider common.AWSClientProvider
	stdin    io.Reader

	configPath   string
	accessKey    string
	secretKey    string
	sessionToken string

	configFile string
	cfg        *config.Config
	configErr  error
	credsErr   error
	log        *logrus.Logger
	session    *session
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(common.NewDefaultAWSClientProvider(), os.Stdin)
}

// newRootCmdWith builds the command tree around provider. Tests pass a
// provider whose profiles carry fake clients.
func newRootCmdWith(provider common.AWSClientProvider, stdin io.Reader) *cobra.Command {
	a := &app{provider: provider, stdin: stdin}

	root := &cobra.Command{
		Use:           "costctl",
		Short:         "Command-line access to the AWS Cost Explorer API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default ~/.config/costctl/config.yaml)")
	pf.String("profile", "", "AWS profile name (default: credential chain)")
	pf.String("region", "", "Region Cost Explorer is called in (default us-east-1)")
	pf.String("endpoint-url", "", "Override the Cost Explorer endpoint URL")
	pf.StringVar(&a.accessKey, "access-key", "", "AWS access key ID")
	pf.StringVar(&a.secretKey, "secret-key", "", "AWS secret access key")
	pf.StringVar(&a.sessionToken, "session-token", "", "AWS session token")
	pf.Int("max-attempts", 0, "Maximum attempts per request including retries (default: SDK default)")
	pf.StringP("output", "o", "json", `Output format: "json", "yaml" or "text"`)
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newGetCostAndUsageCmd(a),
		newGetCostForecastCmd(a),
		newGetTagsCmd(a),
		newGetAnomaliesCmd(a),
		newProvideAnomalyFeedbackCmd(a),
		newGetAnomalyMonitorsCmd(a),
		newCreateAnomalyMonitorCmd(a),
		newUpdateAnomalyMonitorCmd(a),
		newDeleteAnomalyMonitorCmd(a),
		newGetAnomalySubscriptionsCmd(a),
		newDeleteAnomalySubscriptionCmd(a),
		newListCostAllocationTagsCmd(a),
		newUpdateCostAllocationTagsStatusCmd(a),
		newStartCostAllocationTagBackfillCmd(a),
		newListCostAllocationTagBackfillHistoryCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and the shared session.
func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader(a.configPath)
	if err := loader.BindFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	a.configFile = loader.ConfigPath()
	cfg, err := loader.Load()
	if err != nil {
		if cmd.Annotations[annotationTolerateConfig] == "" {
			return err
		}
		a.configErr = err
		cfg = &config.Config{Output: string(output.FormatJSON), LogLevel: "warn"}
	}
	a.cfg = cfg

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = log

	if (a.accessKey == "") != (a.secretKey == "") {
		if cmd.Annotations[annotationTolerateConfig] == "" {
			return common.ErrPartialStaticCredentials
		}
		a.credsErr = common.ErrPartialStaticCredentials
	}
	a.session = newSession(a.provider, a.loadOptions())
	return nil
}

func (a *app) loadOptions() common.LoadOptions {
	return common.LoadOptions{
		Profile:      a.cfg.AWS.Profile,
		Region:       a.cfg.AWS.Region,
		EndpointURL:  a.cfg.AWS.EndpointURL,
		AccessKey:    a.accessKey,
		SecretKey:    a.secretKey,
		SessionToken: a.sessionToken,
		MaxAttempts:  a.cfg.AWS.MaxAttempts,
	}
}

// commonFlags are the per-invocation switches every operation command has.
type commonFlags struct {
	selectExpr   string
	passThru     bool
	force        bool
	cliInputJSON string
}

// operationCmd completes cmd as an operation command. build is called at
// run time, after flags and --cli-input-json are applied, to bind the
// current parameter values. passThru names the parameter echoed by
// --pass-thru.
func (a *app) operationCmd(cmd *cobra.Command, b *binder, passThru string, build func() operations.Operation) *cobra.Command {
	var cf commonFlags

	initial := build()
	fs := cmd.Flags()
	fs.StringVar(&cf.selectExpr, "select", "",
		fmt.Sprintf(`Projection: "*" for the whole response, "^Param" for a parameter value, or a response path (default %q)`, initial.DefaultSelect))
	fs.StringVar(&cf.cliInputJSON, "cli-input-json", "", `Read parameters from a JSON file keyed by parameter name ("-" for stdin)`)
	if passThru != "" {
		fs.BoolVar(&cf.passThru, "pass-thru", false, "Output the "+passThru+" parameter instead of the response")
		_ = fs.MarkDeprecated("pass-thru", "use --select ^"+passThru)
	}
	if initial.Mutating {
		fs.BoolVar(&cf.force, "force", false, "Skip the confirmation prompt")
	}

	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if cf.cliInputJSON != "" {
			data, err := readInputJSON(cf.cliInputJSON, a.stdin)
			if err != nil {
				return err
			}
			if err := b.applyInputJSON(data); err != nil {
				return err
			}
		}

		opts := invoke.Options{Select: cf.selectExpr, Force: cf.force}
		if cf.passThru && opts.Select == "" {
			opts.Select = "^" + passThru
		}

		inv := invoke.NewInvoker(a.session, invoke.PromptConfirmer{In: a.stdin, Out: cmd.ErrOrStderr()}, a.log)
		res := inv.Run(cmd.Context(), build(), opts)

		switch {
		case res.Failed():
			return res.Error
		case res.Declined:
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: not confirmed; no request sent\n", res.Operation)
			return nil
		}

		format, err := output.ParseFormat(a.cfg.Output)
		if err != nil {
			return err
		}
		return output.Render(cmd.OutOrStdout(), res.Output, format)
	}
	return cmd
}

// addNoAutoIteration registers --no-auto-iteration on a paginated command.
func addNoAutoIteration(cmd *cobra.Command, p *bool) {
	cmd.Flags().BoolVar(p, "no-auto-iteration", false, "Return a single page instead of following next-page tokens")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Overrides the root hook: version needs no config or credentials.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}
