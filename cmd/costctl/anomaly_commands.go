package main

import (
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/costctl/internal/operations"
)

func newGetAnomaliesCmd(a *app) *cobra.Command {
	var p operations.GetAnomaliesParams
	cmd := &cobra.Command{
		Use:     "get-anomalies",
		Aliases: []string{"Get-CEAnomaly"},
		Short:   "List cost anomalies detected in a date interval",
	}
	b := newBinder(cmd)
	b.String(&p.MonitorArn, "MonitorArn", "monitor-arn", "Only return anomalies found by this monitor")
	b.String(&p.DateIntervalStartDate, "DateIntervalStartDate", "start-date", "First date anomalies are reported for (YYYY-MM-DD)", "date-interval-start-date")
	b.String(&p.DateIntervalEndDate, "DateIntervalEndDate", "end-date", "Last date anomalies are reported for (YYYY-MM-DD)", "date-interval-end-date")
	b.String(&p.Feedback, "Feedback", "feedback", "Filter by feedback: YES, NO or PLANNED_ACTIVITY")
	b.JSON(&p.TotalImpact, "TotalImpact", "total-impact", "Total impact filter, e.g. {\"NumericOperator\":\"GREATER_THAN\",\"StartValue\":100}")
	b.Int32(&p.MaxResults, "MaxResults", "max-results", "Maximum anomalies per page")
	b.String(&p.NextPageToken, "NextPageToken", "next-page-token", "Token of the page to fetch", "next-token")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.GetAnomalies(p)
	})
}

func newProvideAnomalyFeedbackCmd(a *app) *cobra.Command {
	var p operations.ProvideAnomalyFeedbackParams
	cmd := &cobra.Command{
		Use:     "provide-anomaly-feedback",
		Aliases: []string{"Send-CEAnomalyFeedback"},
		Short:   "Record whether a detected anomaly was expected",
	}
	b := newBinder(cmd)
	b.String(&p.AnomalyId, "AnomalyId", "anomaly-id", "ID of the anomaly")
	b.String(&p.Feedback, "Feedback", "feedback", "YES, NO or PLANNED_ACTIVITY")

	return a.operationCmd(cmd, b, "AnomalyId", func() operations.Operation {
		return operations.ProvideAnomalyFeedback(p)
	})
}

func newGetAnomalyMonitorsCmd(a *app) *cobra.Command {
	var p operations.GetAnomalyMonitorsParams
	cmd := &cobra.Command{
		Use:     "get-anomaly-monitors",
		Aliases: []string{"Get-CEAnomalyMonitor"},
		Short:   "List cost anomaly monitors",
	}
	b := newBinder(cmd)
	b.Strings(&p.MonitorArnList, "MonitorArnList", "monitor-arns", "Only return these monitors", "monitor-arn-list")
	b.Int32(&p.MaxResults, "MaxResults", "max-results", "Maximum monitors per page")
	b.String(&p.NextPageToken, "NextPageToken", "next-page-token", "Token of the page to fetch", "next-token")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.GetAnomalyMonitors(p)
	})
}

func newCreateAnomalyMonitorCmd(a *app) *cobra.Command {
	var p operations.CreateAnomalyMonitorParams
	cmd := &cobra.Command{
		Use:     "create-anomaly-monitor",
		Aliases: []string{"New-CEAnomalyMonitor"},
		Short:   "Create a cost anomaly monitor",
		Example: `  costctl create-anomaly-monitor --monitor-name services \
    --monitor-type DIMENSIONAL --monitor-dimension SERVICE`,
	}
	b := newBinder(cmd)
	b.String(&p.MonitorName, "MonitorName", "monitor-name", "Name of the new monitor", "anomaly-monitor-monitor-name")
	b.String(&p.MonitorType, "MonitorType", "monitor-type", "DIMENSIONAL or CUSTOM", "anomaly-monitor-monitor-type")
	b.String(&p.MonitorDimension, "MonitorDimension", "monitor-dimension", "Dimension of a DIMENSIONAL monitor, e.g. SERVICE", "anomaly-monitor-monitor-dimension")
	b.JSON(&p.MonitorSpecification, "MonitorSpecification", "monitor-specification", "Expression selecting what a CUSTOM monitor evaluates", "anomaly-monitor-monitor-specification")
	b.Value(&resourceTagValue{target: &p.ResourceTags}, "ResourceTags", "resource-tag", "Tag the monitor with KEY=VALUE (repeatable)")

	return a.operationCmd(cmd, b, "MonitorName", func() operations.Operation {
		return operations.CreateAnomalyMonitor(p)
	})
}

func newUpdateAnomalyMonitorCmd(a *app) *cobra.Command {
	var p operations.UpdateAnomalyMonitorParams
	cmd := &cobra.Command{
		Use:     "update-anomaly-monitor",
		Aliases: []string{"Update-CEAnomalyMonitor"},
		Short:   "Rename a cost anomaly monitor",
	}
	b := newBinder(cmd)
	b.String(&p.MonitorArn, "MonitorArn", "monitor-arn", "ARN of the monitor to update")
	b.String(&p.MonitorName, "MonitorName", "monitor-name", "New name of the monitor")

	return a.operationCmd(cmd, b, "MonitorArn", func() operations.Operation {
		return operations.UpdateAnomalyMonitor(p)
	})
}

func newDeleteAnomalyMonitorCmd(a *app) *cobra.Command {
	var p operations.DeleteAnomalyMonitorParams
	cmd := &cobra.Command{
		Use:     "delete-anomaly-monitor",
		Aliases: []string{"Remove-CEAnomalyMonitor"},
		Short:   "Delete a cost anomaly monitor",
	}
	b := newBinder(cmd)
	b.String(&p.MonitorArn, "MonitorArn", "monitor-arn", "ARN of the monitor to delete")

	return a.operationCmd(cmd, b, "MonitorArn", func() operations.Operation {
		return operations.DeleteAnomalyMonitor(p)
	})
}

func newGetAnomalySubscriptionsCmd(a *app) *cobra.Command {
	var p operations.GetAnomalySubscriptionsParams
	cmd := &cobra.Command{
		Use:     "get-anomaly-subscriptions",
		Aliases: []string{"Get-CEAnomalySubscription"},
		Short:   "List cost anomaly subscriptions",
	}
	b := newBinder(cmd)
	b.String(&p.MonitorArn, "MonitorArn", "monitor-arn", "Only return subscriptions attached to this monitor")
	b.Strings(&p.SubscriptionArnList, "SubscriptionArnList", "subscription-arns", "Only return these subscriptions", "subscription-arn-list")
	b.Int32(&p.MaxResults, "MaxResults", "max-results", "Maximum subscriptions per page")
	b.String(&p.NextPageToken, "NextPageToken", "next-page-token", "Token of the page to fetch", "next-token")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.GetAnomalySubscriptions(p)
	})
}

func newDeleteAnomalySubscriptionCmd(a *app) *cobra.Command {
	var p operations.DeleteAnomalySubscriptionParams
	cmd := &cobra.Command{
		Use:     "delete-anomaly-subscription",
		Aliases: []string{"Remove-CEAnomalySubscription"},
		Short:   "Delete a cost anomaly subscription",
	}
	b := newBinder(cmd)
	b.String(&p.SubscriptionArn, "SubscriptionArn", "subscription-arn", "ARN of the subscription to delete")

	return a.operationCmd(cmd, b, "SubscriptionArn", func() operations.Operation {
		return operations.DeleteAnomalySubscription(p)
	})
}
