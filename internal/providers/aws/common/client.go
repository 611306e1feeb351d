package common

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// DefaultRegion is the region Cost Explorer is reached through when neither
// --region nor the configuration names one. Cost Explorer is a global
// service served from us-east-1 in the commercial partition.
const DefaultRegion = "us-east-1"

// LoadOptions selects the credentials, region and endpoint used to build
// the SDK configuration. Zero values fall back to the SDK default chain.
type LoadOptions struct {
	// Profile is the shared-config profile name. Empty selects the default
	// credential chain.
	Profile string

	// Region overrides the Cost Explorer region. Empty means DefaultRegion;
	// the profile's own region is ignored because Cost Explorer is global.
	Region string

	// EndpointURL replaces the resolved service endpoint (e.g. a VPC
	// endpoint or a local emulator).
	EndpointURL string

	// AccessKey, SecretKey and SessionToken, when set, replace the
	// credential chain with static credentials.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// MaxAttempts caps SDK retries. Zero keeps the SDK default.
	MaxAttempts int
}

// ProfileConfig is a resolved AWS profile with its SDK configuration and
// initialised service clients.
type ProfileConfig struct {
	// ProfileName is the name from ~/.aws/credentials or "default".
	ProfileName string

	// AccountID is filled in by AWSClientProvider.ResolveAccountID; it is
	// left empty by LoadProfile so plain commands make no STS call.
	AccountID string

	// Region is the region Cost Explorer is called in.
	Region string

	// Endpoint is the endpoint URL the Cost Explorer client talks to. It is
	// reported in name-resolution diagnostics.
	Endpoint string

	// Config is the fully loaded AWS SDK v2 configuration.
	Config aws.Config

	// Clients holds initialised service clients for this profile.
	Clients *ClientSet
}

// AWSClientProvider loads AWS configurations. It is the sole entry point for
// credential and region management across the CLI.
//
// Implementations must use the AWS SDK v2 only. Never call the aws CLI.
type AWSClientProvider interface {
	// LoadProfile returns a ProfileConfig for opts.
	LoadProfile(ctx context.Context, opts LoadOptions) (*ProfileConfig, error)

	// ResolveAccountID calls STS to resolve the account behind cfg and
	// stores it on cfg.AccountID.
	ResolveAccountID(ctx context.Context, cfg *ProfileConfig) (string, error)

	// ListProfiles returns every profile name found in ~/.aws/credentials
	// and ~/.aws/config.
	ListProfiles() ([]string, error)
}
