package operations

import (
	"context"

	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// GetAnomaliesParams are the inputs of get-anomalies.
type GetAnomaliesParams struct {
	MonitorArn            string
	DateIntervalStartDate string
	DateIntervalEndDate   string
	Feedback              string
	TotalImpact           *cetypes.TotalImpactFilter
	MaxResults            int32
	NextPageToken         string
	NoAutoIteration       bool `json:"-"`
}

// Input builds the SDK request for p.
func (p GetAnomaliesParams) Input() *ce.GetAnomaliesInput {
	in := &ce.GetAnomaliesInput{
		MonitorArn:    optString(p.MonitorArn),
		Feedback:      cetypes.AnomalyFeedbackType(p.Feedback),
		TotalImpact:   p.TotalImpact,
		MaxResults:    optInt32(p.MaxResults),
		NextPageToken: optString(p.NextPageToken),
	}
	if p.DateIntervalStartDate != "" || p.DateIntervalEndDate != "" {
		in.DateInterval = &cetypes.AnomalyDateInterval{
			StartDate: optString(p.DateIntervalStartDate),
			EndDate:   optString(p.DateIntervalEndDate),
		}
	}
	return in
}

// GetAnomalies retrieves detected cost anomalies within a date interval.
func GetAnomalies(p GetAnomaliesParams) Operation {
	return Operation{
		Name:          "GetAnomalies",
		DefaultSelect: "Anomalies",
		Params:        p,
		Required:      unset(param{"DateIntervalStartDate", p.DateIntervalStartDate != ""}),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextPageToken) {
				return c.GetAnomalies(ctx, in)
			}

			var last *ce.GetAnomaliesOutput
			var anomalies []cetypes.Anomaly
			err := paginate(ctx, in.NextPageToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextPageToken = token
				out, err := c.GetAnomalies(ctx, in)
				if err != nil {
					return nil, err
				}
				anomalies = append(anomalies, out.Anomalies...)
				last = out
				return out.NextPageToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.Anomalies = anomalies
			return last, nil
		},
	}
}

// ProvideAnomalyFeedbackParams are the inputs of provide-anomaly-feedback.
type ProvideAnomalyFeedbackParams struct {
	AnomalyId string
	Feedback  string
}

// Input builds the SDK request for p.
func (p ProvideAnomalyFeedbackParams) Input() *ce.ProvideAnomalyFeedbackInput {
	return &ce.ProvideAnomalyFeedbackInput{
		AnomalyId: optString(p.AnomalyId),
		Feedback:  cetypes.AnomalyFeedbackType(p.Feedback),
	}
}

// ProvideAnomalyFeedback records whether a detected anomaly was expected.
func ProvideAnomalyFeedback(p ProvideAnomalyFeedbackParams) Operation {
	return Operation{
		Name:          "ProvideAnomalyFeedback",
		Mutating:      true,
		Target:        p.AnomalyId,
		DefaultSelect: "AnomalyId",
		Params:        p,
		Required: unset(
			param{"AnomalyId", p.AnomalyId != ""},
			param{"Feedback", p.Feedback != ""},
		),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.ProvideAnomalyFeedback(ctx, p.Input())
		},
	}
}
