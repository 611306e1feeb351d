package main

import (
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/costctl/internal/operations"
)

func newGetCostAndUsageCmd(a *app) *cobra.Command {
	var p operations.GetCostAndUsageParams
	cmd := &cobra.Command{
		Use:     "get-cost-and-usage",
		Aliases: []string{"Get-CECostAndUsage"},
		Short:   "Retrieve cost and usage metrics for a time period",
		Example: `  costctl get-cost-and-usage --start 2026-09-01 --end 2026-10-01 \
    --granularity MONTHLY --metrics UnblendedCost --group-by DIMENSION=SERVICE`,
	}
	b := newBinder(cmd)
	b.String(&p.TimePeriodStart, "TimePeriodStart", "start", "Start date, inclusive (YYYY-MM-DD)", "time-period-start")
	b.String(&p.TimePeriodEnd, "TimePeriodEnd", "end", "End date, exclusive (YYYY-MM-DD)", "time-period-end")
	b.String(&p.Granularity, "Granularity", "granularity", "DAILY, MONTHLY or HOURLY")
	b.Strings(&p.Metrics, "Metrics", "metrics", "Metrics to return, e.g. UnblendedCost,UsageQuantity", "metric")
	b.JSON(&p.Filter, "Filter", "filter", "Filter expression")
	b.Value(&groupByValue{target: &p.GroupBy}, "GroupBy", "group-by", "Group results by TYPE=KEY (repeatable)")
	b.String(&p.BillingViewArn, "BillingViewArn", "billing-view-arn", "ARN of the billing view to query")
	b.String(&p.NextPageToken, "NextPageToken", "next-page-token", "Token of the page to fetch", "next-token")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.GetCostAndUsage(p)
	})
}

func newGetCostForecastCmd(a *app) *cobra.Command {
	var p operations.GetCostForecastParams
	cmd := &cobra.Command{
		Use:     "get-cost-forecast",
		Aliases: []string{"Get-CECostForecast"},
		Short:   "Forecast spend for a future time period",
	}
	b := newBinder(cmd)
	b.String(&p.TimePeriodStart, "TimePeriodStart", "start", "Start date, inclusive (YYYY-MM-DD)", "time-period-start")
	b.String(&p.TimePeriodEnd, "TimePeriodEnd", "end", "End date, exclusive (YYYY-MM-DD)", "time-period-end")
	b.String(&p.Granularity, "Granularity", "granularity", "DAILY or MONTHLY")
	b.String(&p.Metric, "Metric", "metric", "Metric to forecast, e.g. UNBLENDED_COST")
	b.JSON(&p.Filter, "Filter", "filter", "Filter expression")
	b.String(&p.BillingViewArn, "BillingViewArn", "billing-view-arn", "ARN of the billing view to query")
	b.Int32(&p.PredictionIntervalLevel, "PredictionIntervalLevel", "prediction-interval-level", "Confidence level of the prediction interval (51-99)")

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.GetCostForecast(p)
	})
}

func newGetTagsCmd(a *app) *cobra.Command {
	var p operations.GetTagsParams
	cmd := &cobra.Command{
		Use:     "get-tags",
		Aliases: []string{"Get-CETag"},
		Short:   "List tag keys, or the values of one key, seen in a time period",
	}
	b := newBinder(cmd)
	b.String(&p.TimePeriodStart, "TimePeriodStart", "start", "Start date, inclusive (YYYY-MM-DD)", "time-period-start")
	b.String(&p.TimePeriodEnd, "TimePeriodEnd", "end", "End date, exclusive (YYYY-MM-DD)", "time-period-end")
	b.String(&p.TagKey, "TagKey", "tag-key", "Return the values of this tag key")
	b.String(&p.SearchString, "SearchString", "search-string", "Only return tags matching this string")
	b.JSON(&p.Filter, "Filter", "filter", "Filter expression")
	b.JSON(&p.SortBy, "SortBy", "sort-by", "Sort definitions")
	b.String(&p.BillingViewArn, "BillingViewArn", "billing-view-arn", "ARN of the billing view to query")
	b.Int32(&p.MaxResults, "MaxResults", "max-results", "Maximum tags per page")
	b.String(&p.NextPageToken, "NextPageToken", "next-page-token", "Token of the page to fetch", "next-token")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.GetTags(p)
	})
}
