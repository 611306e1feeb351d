package common

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ErrPartialStaticCredentials is returned when only one of the access key
// and the secret key is supplied.
var ErrPartialStaticCredentials = errors.New("both access key and secret key are required for static credentials")

// DefaultAWSClientProvider is the production implementation of AWSClientProvider.
// It reads credentials from the standard AWS shared config and credentials files
// (~/.aws/config and ~/.aws/credentials) using the AWS SDK v2.
//
// Inject a custom ClientFactory via NewDefaultAWSClientProviderWithFactory to
// replace real SDK clients with mocks in unit tests.
type DefaultAWSClientProvider struct {
	factory ClientFactory
}

// NewDefaultAWSClientProvider returns a provider backed by the real AWS SDK.
func NewDefaultAWSClientProvider() *DefaultAWSClientProvider {
	return &DefaultAWSClientProvider{factory: NewClientSet}
}

// NewDefaultAWSClientProviderWithFactory returns a provider that uses f to
// create its ClientSet. Pass a mock factory in tests.
func NewDefaultAWSClientProviderWithFactory(f ClientFactory) *DefaultAWSClientProvider {
	return &DefaultAWSClientProvider{factory: f}
}

// ---------------------------------------------------------------------------
// AWSClientProvider implementation
// ---------------------------------------------------------------------------

// LoadProfile loads the AWS SDK config described by opts and returns a
// ProfileConfig with initialised service clients. No remote call is made.
func (p *DefaultAWSClientProvider) LoadProfile(ctx context.Context, opts LoadOptions) (*ProfileConfig, error) {
	name := profileDisplayName(opts.Profile)
	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	if opts.AccessKey != "" || opts.SecretKey != "" {
		if opts.AccessKey == "" || opts.SecretKey == "" {
			return nil, ErrPartialStaticCredentials
		}
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	if opts.MaxAttempts > 0 {
		maxAttempts := opts.MaxAttempts
		loadOpts = append(loadOpts, awsconfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), maxAttempts)
		}))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS profile %q: %w", name, err)
	}
	endpoint, err := CostExplorerEndpoint(ctx, cfg.Region, opts.EndpointURL)
	if err != nil {
		return nil, err
	}

	return &ProfileConfig{
		ProfileName: name,
		Region:      cfg.Region,
		Endpoint:    endpoint,
		Config:      cfg,
		Clients:     p.factory(cfg, opts.EndpointURL),
	}, nil
}

// ResolveAccountID calls STS GetCallerIdentity to retrieve the numeric AWS
// account ID for cfg and records it on cfg.AccountID.
func (p *DefaultAWSClientProvider) ResolveAccountID(ctx context.Context, cfg *ProfileConfig) (string, error) {
	accountID, err := resolveAccountID(ctx, cfg.Clients.STS)
	if err != nil {
		return "", fmt.Errorf("resolve account ID for profile %q: %w", cfg.ProfileName, err)
	}
	cfg.AccountID = accountID
	return accountID, nil
}

// ListProfiles discovers every profile defined in ~/.aws/credentials and
// ~/.aws/config (or the files named by AWS_SHARED_CREDENTIALS_FILE and
// AWS_CONFIG_FILE).
func (p *DefaultAWSClientProvider) ListProfiles() ([]string, error) {
	names, err := discoverProfileNames()
	if err != nil {
		return nil, fmt.Errorf("discover AWS profiles: %w", err)
	}
	return names, nil
}

// CostExplorerEndpoint returns the endpoint URL the Cost Explorer client
// sends requests to for region, as decided by the SDK's endpoint rules.
// Cost Explorer is global per partition, so every commercial region resolves
// to ce.us-east-1. A non-empty override is returned unchanged.
func CostExplorerEndpoint(ctx context.Context, region, override string) (string, error) {
	if region == "" {
		region = DefaultRegion
	}
	params := ce.EndpointParameters{
		Region:       aws.String(region),
		UseFIPS:      aws.Bool(false),
		UseDualStack: aws.Bool(false),
	}
	if override != "" {
		params.Endpoint = aws.String(override)
	}
	ep, err := ce.NewDefaultEndpointResolverV2().ResolveEndpoint(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resolve Cost Explorer endpoint for region %q: %w", region, err)
	}
	return ep.URI.String(), nil
}

// ---------------------------------------------------------------------------
// Package-private helpers
// ---------------------------------------------------------------------------

// profileDisplayName returns a human-readable profile identifier. An empty
// string (the default profile) is shown as "default".
func profileDisplayName(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}

// resolveAccountID calls STS GetCallerIdentity to retrieve the numeric AWS
// account ID for the credentials currently loaded in stsClient.
func resolveAccountID(ctx context.Context, stsClient STSClient) (string, error) {
	out, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("STS GetCallerIdentity: %w", err)
	}
	if out.Account == nil {
		return "", fmt.Errorf("STS GetCallerIdentity returned nil account")
	}
	return aws.ToString(out.Account), nil
}

// discoverProfileNames reads the shared credentials and config files and
// returns the deduplicated list of all profile names found.
func discoverProfileNames() ([]string, error) {
	credPath, cfgPath, err := sharedFilePaths()
	if err != nil {
		return nil, err
	}

	// credentials: section headers are the bare profile name.
	credProfiles, err := parseProfilesFromFile(credPath, false)
	if err != nil {
		return nil, err
	}

	// config: non-default profiles are prefixed with "profile ".
	cfgProfiles, err := parseProfilesFromFile(cfgPath, true)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var all []string
	for _, name := range append(credProfiles, cfgProfiles...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		all = append(all, name)
	}
	return all, nil
}

// sharedFilePaths honours the SDK's AWS_SHARED_CREDENTIALS_FILE and
// AWS_CONFIG_FILE overrides before falling back to ~/.aws.
func sharedFilePaths() (credPath, cfgPath string, err error) {
	credPath = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	cfgPath = os.Getenv("AWS_CONFIG_FILE")
	if credPath != "" && cfgPath != "" {
		return credPath, cfgPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve home directory: %w", err)
	}
	if credPath == "" {
		credPath = filepath.Join(home, ".aws", "credentials")
	}
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".aws", "config")
	}
	return credPath, cfgPath, nil
}

// parseProfilesFromFile scans path for INI section headers ([...]) and
// returns the profile name from each header.
//
// When stripProfilePrefix is true, the "profile " prefix used in
// ~/.aws/config is removed (e.g. "[profile staging]" -> "staging").
// Other config sections such as [sso-session x] and [services x] are skipped.
//
// If the file does not exist, nil is returned without an error.
func parseProfilesFromFile(path string, stripProfilePrefix bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var profiles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}

		name := strings.TrimSpace(line[1 : len(line)-1])
		if stripProfilePrefix && name != "default" {
			if !strings.HasPrefix(name, "profile ") {
				continue
			}
			name = strings.TrimPrefix(name, "profile ")
		}

		profiles = append(profiles, strings.TrimSpace(name))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return profiles, nil
}
