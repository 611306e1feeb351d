package operations

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// ---------------------------------------------------------------------------
// ListCostAllocationTags
// ---------------------------------------------------------------------------

// ListCostAllocationTagsParams are the inputs of list-cost-allocation-tags.
type ListCostAllocationTagsParams struct {
	Status          string
	TagKeys         []string
	Type            string
	MaxResults      int32
	NextToken       string
	NoAutoIteration bool `json:"-"`
}

// Input builds the SDK request for p.
func (p ListCostAllocationTagsParams) Input() *ce.ListCostAllocationTagsInput {
	return &ce.ListCostAllocationTagsInput{
		Status:     cetypes.CostAllocationTagStatus(p.Status),
		TagKeys:    p.TagKeys,
		Type:       cetypes.CostAllocationTagType(p.Type),
		MaxResults: optInt32(p.MaxResults),
		NextToken:  optString(p.NextToken),
	}
}

// ListCostAllocationTags lists cost allocation tag keys and their status.
func ListCostAllocationTags(p ListCostAllocationTagsParams) Operation {
	return Operation{
		Name:          "ListCostAllocationTags",
		DefaultSelect: "CostAllocationTags",
		Params:        p,
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextToken) {
				return c.ListCostAllocationTags(ctx, in)
			}

			var last *ce.ListCostAllocationTagsOutput
			var tags []cetypes.CostAllocationTag
			err := paginate(ctx, in.NextToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextToken = token
				out, err := c.ListCostAllocationTags(ctx, in)
				if err != nil {
					return nil, err
				}
				tags = append(tags, out.CostAllocationTags...)
				last = out
				return out.NextToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.CostAllocationTags = tags
			return last, nil
		},
	}
}

// ---------------------------------------------------------------------------
// UpdateCostAllocationTagsStatus
// ---------------------------------------------------------------------------

// UpdateCostAllocationTagsStatusParams are the inputs of
// update-cost-allocation-tags-status.
type UpdateCostAllocationTagsStatusParams struct {
	CostAllocationTagsStatus []cetypes.CostAllocationTagStatusEntry
}

// Input builds the SDK request for p.
func (p UpdateCostAllocationTagsStatusParams) Input() *ce.UpdateCostAllocationTagsStatusInput {
	return &ce.UpdateCostAllocationTagsStatusInput{
		CostAllocationTagsStatus: p.CostAllocationTagsStatus,
	}
}

// UpdateCostAllocationTagsStatus activates or deactivates tag keys for cost
// allocation. Per-key failures come back in the Errors list of the response.
func UpdateCostAllocationTagsStatus(p UpdateCostAllocationTagsStatusParams) Operation {
	keys := make([]string, 0, len(p.CostAllocationTagsStatus))
	for _, e := range p.CostAllocationTagsStatus {
		keys = append(keys, aws.ToString(e.TagKey))
	}
	return Operation{
		Name:          "UpdateCostAllocationTagsStatus",
		Mutating:      true,
		Target:        strings.Join(keys, ", "),
		DefaultSelect: "Errors",
		Params:        p,
		Required:      unset(param{"CostAllocationTagsStatus", len(p.CostAllocationTagsStatus) > 0}),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.UpdateCostAllocationTagsStatus(ctx, p.Input())
		},
	}
}
