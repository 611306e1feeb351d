package common

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type stubSTS struct {
	account *string
	err     error
}

func (s *stubSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &sts.GetCallerIdentityOutput{Account: s.account}, nil
}

// isolateSharedConfig points the SDK at files inside a temp dir so the test
// never reads the developer's real ~/.aws.
func isolateSharedConfig(t *testing.T, credentials, config string) {
	t.Helper()
	dir := t.TempDir()
	credPath := filepath.Join(dir, "credentials")
	cfgPath := filepath.Join(dir, "config")
	if credentials != "" {
		if err := os.WriteFile(credPath, []byte(credentials), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if config != "" {
		if err := os.WriteFile(cfgPath, []byte(config), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credPath)
	t.Setenv("AWS_CONFIG_FILE", cfgPath)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

// ── LoadProfile ──────────────────────────────────────────────────────────────

func TestLoadProfile_DefaultRegionAndEndpoint(t *testing.T) {
	isolateSharedConfig(t, "", "")

	var gotEndpoint string
	p := NewDefaultAWSClientProviderWithFactory(func(cfg aws.Config, endpointURL string) *ClientSet {
		gotEndpoint = endpointURL
		return &ClientSet{STS: &stubSTS{}}
	})

	pc, err := p.LoadProfile(context.Background(), LoadOptions{AccessKey: "AKID", SecretKey: "SECRET"})
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if pc.Region != DefaultRegion {
		t.Errorf("Region = %q; want %q", pc.Region, DefaultRegion)
	}
	if pc.ProfileName != "default" {
		t.Errorf("ProfileName = %q; want default", pc.ProfileName)
	}
	if pc.Endpoint != "https://ce.us-east-1.amazonaws.com" {
		t.Errorf("Endpoint = %q", pc.Endpoint)
	}
	if gotEndpoint != "" {
		t.Errorf("factory endpoint override = %q; want empty", gotEndpoint)
	}
	if pc.AccountID != "" {
		t.Errorf("AccountID should stay empty until ResolveAccountID; got %q", pc.AccountID)
	}
}

func TestLoadProfile_StaticCredentials(t *testing.T) {
	isolateSharedConfig(t, "", "")

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config, string) *ClientSet { return &ClientSet{} })
	pc, err := p.LoadProfile(context.Background(), LoadOptions{
		AccessKey:    "AKID",
		SecretKey:    "SECRET",
		SessionToken: "TOKEN",
	})
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}

	creds, err := pc.Config.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" || creds.SessionToken != "TOKEN" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestLoadProfile_PartialStaticCredentials(t *testing.T) {
	isolateSharedConfig(t, "", "")

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config, string) *ClientSet { return &ClientSet{} })
	_, err := p.LoadProfile(context.Background(), LoadOptions{AccessKey: "AKID"})
	if !errors.Is(err, ErrPartialStaticCredentials) {
		t.Fatalf("err = %v; want ErrPartialStaticCredentials", err)
	}
}

func TestLoadProfile_CommercialRegionUsesGlobalEndpoint(t *testing.T) {
	isolateSharedConfig(t, "[default]\naws_access_key_id = AKID\naws_secret_access_key = SECRET\n", "")

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config, string) *ClientSet { return &ClientSet{} })
	pc, err := p.LoadProfile(context.Background(), LoadOptions{Region: "eu-west-1"})
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if pc.Region != "eu-west-1" {
		t.Errorf("Region = %q", pc.Region)
	}
	if pc.Endpoint != "https://ce.us-east-1.amazonaws.com" {
		t.Errorf("Endpoint = %q; want the global Cost Explorer endpoint", pc.Endpoint)
	}
}

func TestLoadProfile_RegionAndEndpointOverride(t *testing.T) {
	isolateSharedConfig(t,
		"[staging]\naws_access_key_id = AKID\naws_secret_access_key = SECRET\n",
		"[profile staging]\nregion = eu-west-1\n",
	)

	var gotEndpoint string
	p := NewDefaultAWSClientProviderWithFactory(func(cfg aws.Config, endpointURL string) *ClientSet {
		gotEndpoint = endpointURL
		return &ClientSet{}
	})

	pc, err := p.LoadProfile(context.Background(), LoadOptions{
		Profile:     "staging",
		Region:      "cn-northwest-1",
		EndpointURL: "http://localhost:4566",
		MaxAttempts: 7,
	})
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if pc.ProfileName != "staging" {
		t.Errorf("ProfileName = %q", pc.ProfileName)
	}
	if pc.Region != "cn-northwest-1" {
		t.Errorf("Region = %q; profile region must not win over the explicit one", pc.Region)
	}
	if pc.Endpoint != "http://localhost:4566" || gotEndpoint != "http://localhost:4566" {
		t.Errorf("endpoint not forwarded: profile=%q factory=%q", pc.Endpoint, gotEndpoint)
	}
	if pc.Config.Retryer == nil {
		t.Fatal("expected a retryer to be configured")
	}
	if got := pc.Config.Retryer().MaxAttempts(); got != 7 {
		t.Errorf("MaxAttempts = %d; want 7", got)
	}
}

func TestLoadProfile_UnknownProfile(t *testing.T) {
	isolateSharedConfig(t, "", "")

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config, string) *ClientSet { return &ClientSet{} })
	if _, err := p.LoadProfile(context.Background(), LoadOptions{Profile: "missing"}); err == nil {
		t.Fatal("expected an error for a profile that does not exist")
	}
}

// ── ResolveAccountID ─────────────────────────────────────────────────────────

func TestResolveAccountID(t *testing.T) {
	p := NewDefaultAWSClientProvider()
	pc := &ProfileConfig{
		ProfileName: "prod",
		Clients:     &ClientSet{STS: &stubSTS{account: aws.String("123456789012")}},
	}

	id, err := p.ResolveAccountID(context.Background(), pc)
	if err != nil {
		t.Fatalf("ResolveAccountID: %v", err)
	}
	if id != "123456789012" || pc.AccountID != id {
		t.Errorf("id = %q, pc.AccountID = %q", id, pc.AccountID)
	}
}

func TestResolveAccountID_Errors(t *testing.T) {
	p := NewDefaultAWSClientProvider()

	stsErr := errors.New("expired token")
	pc := &ProfileConfig{ProfileName: "prod", Clients: &ClientSet{STS: &stubSTS{err: stsErr}}}
	if _, err := p.ResolveAccountID(context.Background(), pc); !errors.Is(err, stsErr) {
		t.Errorf("err = %v; want wrapped STS error", err)
	}

	pc = &ProfileConfig{ProfileName: "prod", Clients: &ClientSet{STS: &stubSTS{}}}
	if _, err := p.ResolveAccountID(context.Background(), pc); err == nil {
		t.Error("expected error for nil account")
	}
}

// ── profile discovery ────────────────────────────────────────────────────────

func TestListProfiles(t *testing.T) {
	isolateSharedConfig(t,
		"[default]\naws_access_key_id = a\n\n[staging]\naws_access_key_id = b\n",
		"[default]\nregion = us-east-1\n[profile staging]\n[profile prod]\n[sso-session corp]\nsso_region = us-east-1\n",
	)

	got, err := NewDefaultAWSClientProvider().ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	want := []string{"default", "staging", "prod"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListProfiles = %v; want %v", got, want)
	}
}

func TestParseProfilesFromFile_Missing(t *testing.T) {
	got, err := parseProfilesFromFile(filepath.Join(t.TempDir(), "nope"), false)
	if err != nil || got != nil {
		t.Errorf("got %v, %v; want nil, nil", got, err)
	}
}

// ── CostExplorerEndpoint ─────────────────────────────────────────────────────

func TestCostExplorerEndpoint(t *testing.T) {
	tests := []struct {
		region, override, want string
	}{
		{"", "", "https://ce.us-east-1.amazonaws.com"},
		{"us-east-1", "", "https://ce.us-east-1.amazonaws.com"},
		{"eu-west-1", "", "https://ce.us-east-1.amazonaws.com"},
		{"ap-southeast-2", "", "https://ce.us-east-1.amazonaws.com"},
		{"cn-north-1", "", "https://ce.cn-northwest-1.amazonaws.com.cn"},
		{"cn-northwest-1", "", "https://ce.cn-northwest-1.amazonaws.com.cn"},
		{"us-east-1", "https://vpce.example", "https://vpce.example"},
	}
	for _, tt := range tests {
		got, err := CostExplorerEndpoint(context.Background(), tt.region, tt.override)
		if err != nil {
			t.Errorf("CostExplorerEndpoint(%q, %q): %v", tt.region, tt.override, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CostExplorerEndpoint(%q, %q) = %q; want %q", tt.region, tt.override, got, tt.want)
		}
	}
}

// The diagnostic endpoint must be the host the SDK client actually calls.
func TestCostExplorerEndpoint_MatchesClientResolver(t *testing.T) {
	for _, region := range []string{"us-east-1", "eu-west-1", "cn-north-1"} {
		ep, err := ce.NewDefaultEndpointResolverV2().ResolveEndpoint(context.Background(), ce.EndpointParameters{Region: aws.String(region)})
		if err != nil {
			t.Fatalf("SDK resolver(%q): %v", region, err)
		}
		got, err := CostExplorerEndpoint(context.Background(), region, "")
		if err != nil {
			t.Fatalf("CostExplorerEndpoint(%q): %v", region, err)
		}
		if got != ep.URI.String() {
			t.Errorf("region %s: diagnostic %q, client sends to %q", region, got, ep.URI.String())
		}
	}
}
