package common

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ---------------------------------------------------------------------------
// Per-service client interfaces
//
// Each interface covers only the operations used by this project. Using narrow
// interfaces instead of the full SDK clients makes mocking in unit tests
// trivial: create a struct that satisfies the interface and return canned data.
// ---------------------------------------------------------------------------

// STSClient is the subset of STS operations used by the loader.
type STSClient interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// CostExplorerClient covers every Cost Explorer operation exposed as a
// command. *costexplorer.Client satisfies it.
type CostExplorerClient interface {
	GetCostAndUsage(ctx context.Context, params *ce.GetCostAndUsageInput, optFns ...func(*ce.Options)) (*ce.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *ce.GetCostForecastInput, optFns ...func(*ce.Options)) (*ce.GetCostForecastOutput, error)
	GetTags(ctx context.Context, params *ce.GetTagsInput, optFns ...func(*ce.Options)) (*ce.GetTagsOutput, error)

	GetAnomalies(ctx context.Context, params *ce.GetAnomaliesInput, optFns ...func(*ce.Options)) (*ce.GetAnomaliesOutput, error)
	ProvideAnomalyFeedback(ctx context.Context, params *ce.ProvideAnomalyFeedbackInput, optFns ...func(*ce.Options)) (*ce.ProvideAnomalyFeedbackOutput, error)

	GetAnomalyMonitors(ctx context.Context, params *ce.GetAnomalyMonitorsInput, optFns ...func(*ce.Options)) (*ce.GetAnomalyMonitorsOutput, error)
	CreateAnomalyMonitor(ctx context.Context, params *ce.CreateAnomalyMonitorInput, optFns ...func(*ce.Options)) (*ce.CreateAnomalyMonitorOutput, error)
	UpdateAnomalyMonitor(ctx context.Context, params *ce.UpdateAnomalyMonitorInput, optFns ...func(*ce.Options)) (*ce.UpdateAnomalyMonitorOutput, error)
	DeleteAnomalyMonitor(ctx context.Context, params *ce.DeleteAnomalyMonitorInput, optFns ...func(*ce.Options)) (*ce.DeleteAnomalyMonitorOutput, error)

	GetAnomalySubscriptions(ctx context.Context, params *ce.GetAnomalySubscriptionsInput, optFns ...func(*ce.Options)) (*ce.GetAnomalySubscriptionsOutput, error)
	DeleteAnomalySubscription(ctx context.Context, params *ce.DeleteAnomalySubscriptionInput, optFns ...func(*ce.Options)) (*ce.DeleteAnomalySubscriptionOutput, error)

	ListCostAllocationTags(ctx context.Context, params *ce.ListCostAllocationTagsInput, optFns ...func(*ce.Options)) (*ce.ListCostAllocationTagsOutput, error)
	UpdateCostAllocationTagsStatus(ctx context.Context, params *ce.UpdateCostAllocationTagsStatusInput, optFns ...func(*ce.Options)) (*ce.UpdateCostAllocationTagsStatusOutput, error)
	StartCostAllocationTagBackfill(ctx context.Context, params *ce.StartCostAllocationTagBackfillInput, optFns ...func(*ce.Options)) (*ce.StartCostAllocationTagBackfillOutput, error)
	ListCostAllocationTagBackfillHistory(ctx context.Context, params *ce.ListCostAllocationTagBackfillHistoryInput, optFns ...func(*ce.Options)) (*ce.ListCostAllocationTagBackfillHistoryOutput, error)
}

// ---------------------------------------------------------------------------
// ClientSet and ClientFactory
// ---------------------------------------------------------------------------

// ClientSet holds fully initialised AWS service clients for a given profile.
// All fields are interfaces so they can be replaced with mocks in tests
// without importing the AWS SDK in test files.
type ClientSet struct {
	STS          STSClient
	CostExplorer CostExplorerClient
}

// ClientFactory creates a ClientSet from an aws.Config. endpointURL, when
// non-empty, overrides the Cost Explorer endpoint.
// Swap this in tests to inject mock clients.
type ClientFactory func(cfg aws.Config, endpointURL string) *ClientSet

// NewClientSet is the production ClientFactory. cfg.Region must already be
// the Cost Explorer region; LoadProfile takes care of that.
func NewClientSet(cfg aws.Config, endpointURL string) *ClientSet {
	return &ClientSet{
		STS: sts.NewFromConfig(cfg),
		CostExplorer: ce.NewFromConfig(cfg, func(o *ce.Options) {
			if endpointURL != "" {
				o.BaseEndpoint = aws.String(endpointURL)
			}
		}),
	}
}
