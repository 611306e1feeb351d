package operations

import (
	"context"

	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// GetAnomalySubscriptionsParams are the inputs of get-anomaly-subscriptions.
type GetAnomalySubscriptionsParams struct {
	MonitorArn          string
	SubscriptionArnList []string
	MaxResults          int32
	NextPageToken       string
	NoAutoIteration     bool `json:"-"`
}

// Input builds the SDK request for p.
func (p GetAnomalySubscriptionsParams) Input() *ce.GetAnomalySubscriptionsInput {
	return &ce.GetAnomalySubscriptionsInput{
		MonitorArn:          optString(p.MonitorArn),
		SubscriptionArnList: p.SubscriptionArnList,
		MaxResults:          optInt32(p.MaxResults),
		NextPageToken:       optString(p.NextPageToken),
	}
}

// GetAnomalySubscriptions retrieves anomaly subscriptions, optionally
// limited to one monitor.
func GetAnomalySubscriptions(p GetAnomalySubscriptionsParams) Operation {
	return Operation{
		Name:          "GetAnomalySubscriptions",
		DefaultSelect: "AnomalySubscriptions",
		Params:        p,
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextPageToken) {
				return c.GetAnomalySubscriptions(ctx, in)
			}

			var last *ce.GetAnomalySubscriptionsOutput
			var subs []cetypes.AnomalySubscription
			err := paginate(ctx, in.NextPageToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextPageToken = token
				out, err := c.GetAnomalySubscriptions(ctx, in)
				if err != nil {
					return nil, err
				}
				subs = append(subs, out.AnomalySubscriptions...)
				last = out
				return out.NextPageToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.AnomalySubscriptions = subs
			return last, nil
		},
	}
}

// DeleteAnomalySubscriptionParams are the inputs of delete-anomaly-subscription.
type DeleteAnomalySubscriptionParams struct {
	SubscriptionArn string
}

// Input builds the SDK request for p.
func (p DeleteAnomalySubscriptionParams) Input() *ce.DeleteAnomalySubscriptionInput {
	return &ce.DeleteAnomalySubscriptionInput{SubscriptionArn: optString(p.SubscriptionArn)}
}

// DeleteAnomalySubscription deletes an anomaly subscription.
func DeleteAnomalySubscription(p DeleteAnomalySubscriptionParams) Operation {
	return Operation{
		Name:          "DeleteAnomalySubscription",
		Mutating:      true,
		Target:        p.SubscriptionArn,
		DefaultSelect: SelectAll,
		Params:        p,
		Mandatory:     unset(param{"SubscriptionArn", p.SubscriptionArn != ""}),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.DeleteAnomalySubscription(ctx, p.Input())
		},
	}
}
