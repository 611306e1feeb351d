package operations

import (
	"context"

	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// StartCostAllocationTagBackfillParams are the inputs of
// start-cost-allocation-tag-backfill.
type StartCostAllocationTagBackfillParams struct {
	// BackfillFrom is an ISO 8601 timestamp, e.g. "2024-01-01T00:00:00Z".
	// The service only accepts the first day of a month.
	BackfillFrom string
}

// Input builds the SDK request for p.
func (p StartCostAllocationTagBackfillParams) Input() *ce.StartCostAllocationTagBackfillInput {
	return &ce.StartCostAllocationTagBackfillInput{BackfillFrom: optString(p.BackfillFrom)}
}

// StartCostAllocationTagBackfill requests that active cost allocation tags
// be applied retroactively from BackfillFrom.
func StartCostAllocationTagBackfill(p StartCostAllocationTagBackfillParams) Operation {
	return Operation{
		Name:          "StartCostAllocationTagBackfill",
		Mutating:      true,
		Target:        p.BackfillFrom,
		DefaultSelect: "BackfillRequest",
		Params:        p,
		Required:      unset(param{"BackfillFrom", p.BackfillFrom != ""}),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.StartCostAllocationTagBackfill(ctx, p.Input())
		},
	}
}

// ListCostAllocationTagBackfillHistoryParams are the inputs of
// list-cost-allocation-tag-backfill-history.
type ListCostAllocationTagBackfillHistoryParams struct {
	MaxResults      int32
	NextToken       string
	NoAutoIteration bool `json:"-"`
}

// Input builds the SDK request for p.
func (p ListCostAllocationTagBackfillHistoryParams) Input() *ce.ListCostAllocationTagBackfillHistoryInput {
	return &ce.ListCostAllocationTagBackfillHistoryInput{
		MaxResults: optInt32(p.MaxResults),
		NextToken:  optString(p.NextToken),
	}
}

// ListCostAllocationTagBackfillHistory lists past backfill requests.
func ListCostAllocationTagBackfillHistory(p ListCostAllocationTagBackfillHistoryParams) Operation {
	return Operation{
		Name:          "ListCostAllocationTagBackfillHistory",
		DefaultSelect: "BackfillRequests",
		Params:        p,
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextToken) {
				return c.ListCostAllocationTagBackfillHistory(ctx, in)
			}

			var last *ce.ListCostAllocationTagBackfillHistoryOutput
			var requests []cetypes.CostAllocationTagBackfillRequest
			err := paginate(ctx, in.NextToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextToken = token
				out, err := c.ListCostAllocationTagBackfillHistory(ctx, in)
				if err != nil {
					return nil, err
				}
				requests = append(requests, out.BackfillRequests...)
				last = out
				return out.NextToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.BackfillRequests = requests
			return last, nil
		},
	}
}
