package operations

import (
	"context"

	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// ---------------------------------------------------------------------------
// GetCostAndUsage
// ---------------------------------------------------------------------------

// GetCostAndUsageParams are the inputs of get-cost-and-usage. TimePeriodEnd
// is exclusive, matching the service.
type GetCostAndUsageParams struct {
	TimePeriodStart string
	TimePeriodEnd   string
	Granularity     string
	Metrics         []string
	Filter          *cetypes.Expression
	GroupBy         []cetypes.GroupDefinition
	BillingViewArn  string
	NextPageToken   string
	NoAutoIteration bool `json:"-"`
}

// Input builds the SDK request for p.
func (p GetCostAndUsageParams) Input() *ce.GetCostAndUsageInput {
	return &ce.GetCostAndUsageInput{
		TimePeriod:     dateInterval(p.TimePeriodStart, p.TimePeriodEnd),
		Granularity:    cetypes.Granularity(p.Granularity),
		Metrics:        p.Metrics,
		Filter:         p.Filter,
		GroupBy:        p.GroupBy,
		BillingViewArn: optString(p.BillingViewArn),
		NextPageToken:  optString(p.NextPageToken),
	}
}

// GetCostAndUsage retrieves cost and usage metrics. When paging
// automatically, ResultsByTime and DimensionValueAttributes of every page
// are concatenated in order; the other fields come from the last page.
func GetCostAndUsage(p GetCostAndUsageParams) Operation {
	return Operation{
		Name:          "GetCostAndUsage",
		DefaultSelect: "ResultsByTime",
		Params:        p,
		Required: unset(
			param{"TimePeriodStart", p.TimePeriodStart != ""},
			param{"TimePeriodEnd", p.TimePeriodEnd != ""},
			param{"Granularity", p.Granularity != ""},
			param{"Metrics", len(p.Metrics) > 0},
		),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextPageToken) {
				return c.GetCostAndUsage(ctx, in)
			}

			var last *ce.GetCostAndUsageOutput
			var results []cetypes.ResultByTime
			var attrs []cetypes.DimensionValuesWithAttributes
			err := paginate(ctx, in.NextPageToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextPageToken = token
				out, err := c.GetCostAndUsage(ctx, in)
				if err != nil {
					return nil, err
				}
				results = append(results, out.ResultsByTime...)
				attrs = append(attrs, out.DimensionValueAttributes...)
				last = out
				return out.NextPageToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.ResultsByTime = results
			last.DimensionValueAttributes = attrs
			return last, nil
		},
	}
}

// ---------------------------------------------------------------------------
// GetCostForecast
// ---------------------------------------------------------------------------

// GetCostForecastParams are the inputs of get-cost-forecast.
type GetCostForecastParams struct {
	TimePeriodStart         string
	TimePeriodEnd           string
	Granularity             string
	Metric                  string
	Filter                  *cetypes.Expression
	BillingViewArn          string
	PredictionIntervalLevel int32
}

// Input builds the SDK request for p.
func (p GetCostForecastParams) Input() *ce.GetCostForecastInput {
	return &ce.GetCostForecastInput{
		TimePeriod:              dateInterval(p.TimePeriodStart, p.TimePeriodEnd),
		Granularity:             cetypes.Granularity(p.Granularity),
		Metric:                  cetypes.Metric(p.Metric),
		Filter:                  p.Filter,
		BillingViewArn:          optString(p.BillingViewArn),
		PredictionIntervalLevel: optInt32(p.PredictionIntervalLevel),
	}
}

// GetCostForecast forecasts spend over a future time period.
func GetCostForecast(p GetCostForecastParams) Operation {
	return Operation{
		Name:          "GetCostForecast",
		DefaultSelect: SelectAll,
		Params:        p,
		Required: unset(
			param{"TimePeriodStart", p.TimePeriodStart != ""},
			param{"TimePeriodEnd", p.TimePeriodEnd != ""},
			param{"Granularity", p.Granularity != ""},
			param{"Metric", p.Metric != ""},
		),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.GetCostForecast(ctx, p.Input())
		},
	}
}

// ---------------------------------------------------------------------------
// GetTags
// ---------------------------------------------------------------------------

// GetTagsParams are the inputs of get-tags.
type GetTagsParams struct {
	TimePeriodStart string
	TimePeriodEnd   string
	TagKey          string
	SearchString    string
	Filter          *cetypes.Expression
	SortBy          []cetypes.SortDefinition
	BillingViewArn  string
	MaxResults      int32
	NextPageToken   string
	NoAutoIteration bool `json:"-"`
}

// Input builds the SDK request for p.
func (p GetTagsParams) Input() *ce.GetTagsInput {
	return &ce.GetTagsInput{
		TimePeriod:     dateInterval(p.TimePeriodStart, p.TimePeriodEnd),
		TagKey:         optString(p.TagKey),
		SearchString:   optString(p.SearchString),
		Filter:         p.Filter,
		SortBy:         p.SortBy,
		BillingViewArn: optString(p.BillingViewArn),
		MaxResults:     optInt32(p.MaxResults),
		NextPageToken:  optString(p.NextPageToken),
	}
}

// GetTags lists tag keys, or the values of TagKey, seen in a time period.
func GetTags(p GetTagsParams) Operation {
	return Operation{
		Name:          "GetTags",
		DefaultSelect: "Tags",
		Params:        p,
		Required: unset(
			param{"TimePeriodStart", p.TimePeriodStart != ""},
			param{"TimePeriodEnd", p.TimePeriodEnd != ""},
		),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextPageToken) {
				return c.GetTags(ctx, in)
			}

			var last *ce.GetTagsOutput
			var tags []string
			err := paginate(ctx, in.NextPageToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextPageToken = token
				out, err := c.GetTags(ctx, in)
				if err != nil {
					return nil, err
				}
				tags = append(tags, out.Tags...)
				last = out
				return out.NextPageToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.Tags = tags
			return last, nil
		},
	}
}
