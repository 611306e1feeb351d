package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/pankaj-dahiya-devops/costctl/internal/invoke"
	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// session is the client factory shared by every command of one process.
// The AWS configuration is loaded on first use so that commands which fail
// validation or are declined never touch credentials.
type session struct {
	provider common.AWSClientProvider
	opts     common.LoadOptions

	once     sync.Once
	profile  *common.ProfileConfig
	endpoint invoke.Endpoint
	err      error
}

func newSession(provider common.AWSClientProvider, opts common.LoadOptions) *session {
	return &session{provider: provider, opts: opts}
}

func (s *session) load(ctx context.Context) {
	s.once.Do(func() {
		profile, err := s.provider.LoadProfile(ctx, s.opts)
		if err != nil {
			s.err = fmt.Errorf("load AWS configuration: %w", err)
			return
		}
		if profile.Clients == nil || profile.Clients.CostExplorer == nil {
			s.err = fmt.Errorf("load AWS configuration: no Cost Explorer client for profile %s", profile.ProfileName)
			return
		}
		s.profile = profile
		s.endpoint = invoke.Endpoint{URL: profile.Endpoint, Region: profile.Region}
	})
}

// CostExplorer implements invoke.ClientProvider.
func (s *session) CostExplorer(ctx context.Context) (common.CostExplorerClient, invoke.Endpoint, error) {
	s.load(ctx)
	if s.err != nil {
		return nil, invoke.Endpoint{}, s.err
	}
	return s.profile.Clients.CostExplorer, s.endpoint, nil
}
