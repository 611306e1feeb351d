package main

import (
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/costctl/internal/operations"
)

func newListCostAllocationTagsCmd(a *app) *cobra.Command {
	var p operations.ListCostAllocationTagsParams
	cmd := &cobra.Command{
		Use:     "list-cost-allocation-tags",
		Aliases: []string{"Get-CECostAllocationTagList"},
		Short:   "List cost allocation tags and their activation status",
	}
	b := newBinder(cmd)
	b.String(&p.Status, "Status", "status", "Active or Inactive")
	b.Strings(&p.TagKeys, "TagKeys", "tag-keys", "Only return these tag keys")
	b.String(&p.Type, "Type", "type", "AWSGenerated or UserDefined")
	b.Int32(&p.MaxResults, "MaxResults", "max-results", "Maximum tags per page")
	b.String(&p.NextToken, "NextToken", "next-token", "Token of the page to fetch")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.ListCostAllocationTags(p)
	})
}

func newUpdateCostAllocationTagsStatusCmd(a *app) *cobra.Command {
	var p operations.UpdateCostAllocationTagsStatusParams
	cmd := &cobra.Command{
		Use:     "update-cost-allocation-tags-status",
		Aliases: []string{"Update-CECostAllocationTagsStatus"},
		Short:   "Activate or deactivate cost allocation tags",
		Example: `  costctl update-cost-allocation-tags-status --tag-status team=Active --tag-status env=Inactive`,
	}
	b := newBinder(cmd)
	b.Value(&tagStatusValue{target: &p.CostAllocationTagsStatus}, "CostAllocationTagsStatus", "tag-status", "Set tag KEY to STATUS, KEY=Active or KEY=Inactive (repeatable)")

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.UpdateCostAllocationTagsStatus(p)
	})
}

func newStartCostAllocationTagBackfillCmd(a *app) *cobra.Command {
	var p operations.StartCostAllocationTagBackfillParams
	cmd := &cobra.Command{
		Use:     "start-cost-allocation-tag-backfill",
		Aliases: []string{"Start-CECostAllocationTagBackfill"},
		Short:   "Backfill cost allocation tag activation from a past date",
	}
	b := newBinder(cmd)
	b.String(&p.BackfillFrom, "BackfillFrom", "backfill-from", "First day to backfill, in ISO 8601 (e.g. 2026-01-01T00:00:00Z)")

	return a.operationCmd(cmd, b, "BackfillFrom", func() operations.Operation {
		return operations.StartCostAllocationTagBackfill(p)
	})
}

func newListCostAllocationTagBackfillHistoryCmd(a *app) *cobra.Command {
	var p operations.ListCostAllocationTagBackfillHistoryParams
	cmd := &cobra.Command{
		Use:     "list-cost-allocation-tag-backfill-history",
		Aliases: []string{"Get-CECostAllocationTagBackfillHistory"},
		Short:   "List past cost allocation tag backfill requests",
	}
	b := newBinder(cmd)
	b.Int32(&p.MaxResults, "MaxResults", "max-results", "Maximum requests per page")
	b.String(&p.NextToken, "NextToken", "next-token", "Token of the page to fetch")
	addNoAutoIteration(cmd, &p.NoAutoIteration)

	return a.operationCmd(cmd, b, "", func() operations.Operation {
		return operations.ListCostAllocationTagBackfillHistory(p)
	})
}
