package operations

import (
	"context"

	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// ---------------------------------------------------------------------------
// GetAnomalyMonitors
// ---------------------------------------------------------------------------

// GetAnomalyMonitorsParams are the inputs of get-anomaly-monitors.
type GetAnomalyMonitorsParams struct {
	MonitorArnList  []string
	MaxResults      int32
	NextPageToken   string
	NoAutoIteration bool `json:"-"`
}

// Input builds the SDK request for p.
func (p GetAnomalyMonitorsParams) Input() *ce.GetAnomalyMonitorsInput {
	return &ce.GetAnomalyMonitorsInput{
		MonitorArnList: p.MonitorArnList,
		MaxResults:     optInt32(p.MaxResults),
		NextPageToken:  optString(p.NextPageToken),
	}
}

// GetAnomalyMonitors retrieves cost anomaly monitors. Without an explicit
// page token every page is fetched and the monitors are concatenated.
func GetAnomalyMonitors(p GetAnomalyMonitorsParams) Operation {
	return Operation{
		Name:          "GetAnomalyMonitors",
		DefaultSelect: "AnomalyMonitors",
		Params:        p,
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			in := p.Input()
			if userPaging(p.NoAutoIteration, p.NextPageToken) {
				return c.GetAnomalyMonitors(ctx, in)
			}

			var last *ce.GetAnomalyMonitorsOutput
			var monitors []cetypes.AnomalyMonitor
			err := paginate(ctx, in.NextPageToken, func(ctx context.Context, token *string) (*string, error) {
				in.NextPageToken = token
				out, err := c.GetAnomalyMonitors(ctx, in)
				if err != nil {
					return nil, err
				}
				monitors = append(monitors, out.AnomalyMonitors...)
				last = out
				return out.NextPageToken, nil
			})
			if err != nil {
				return nil, err
			}
			last.AnomalyMonitors = monitors
			return last, nil
		},
	}
}

// ---------------------------------------------------------------------------
// CreateAnomalyMonitor
// ---------------------------------------------------------------------------

// CreateAnomalyMonitorParams are the inputs of create-anomaly-monitor.
type CreateAnomalyMonitorParams struct {
	MonitorName          string
	MonitorType          string
	MonitorDimension     string
	MonitorSpecification *cetypes.Expression
	ResourceTags         []cetypes.ResourceTag
}

// Input builds the SDK request for p.
func (p CreateAnomalyMonitorParams) Input() *ce.CreateAnomalyMonitorInput {
	return &ce.CreateAnomalyMonitorInput{
		AnomalyMonitor: &cetypes.AnomalyMonitor{
			MonitorName:          optString(p.MonitorName),
			MonitorType:          cetypes.MonitorType(p.MonitorType),
			MonitorDimension:     cetypes.MonitorDimension(p.MonitorDimension),
			MonitorSpecification: p.MonitorSpecification,
		},
		ResourceTags: p.ResourceTags,
	}
}

// CreateAnomalyMonitor creates a new cost anomaly monitor.
func CreateAnomalyMonitor(p CreateAnomalyMonitorParams) Operation {
	return Operation{
		Name:          "CreateAnomalyMonitor",
		Mutating:      true,
		Target:        p.MonitorName,
		DefaultSelect: "MonitorArn",
		Params:        p,
		Required: unset(
			param{"MonitorName", p.MonitorName != ""},
			param{"MonitorType", p.MonitorType != ""},
		),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.CreateAnomalyMonitor(ctx, p.Input())
		},
	}
}

// ---------------------------------------------------------------------------
// UpdateAnomalyMonitor
// ---------------------------------------------------------------------------

// UpdateAnomalyMonitorParams are the inputs of update-anomaly-monitor.
type UpdateAnomalyMonitorParams struct {
	MonitorArn  string
	MonitorName string
}

// Input builds the SDK request for p.
func (p UpdateAnomalyMonitorParams) Input() *ce.UpdateAnomalyMonitorInput {
	return &ce.UpdateAnomalyMonitorInput{
		MonitorArn:  optString(p.MonitorArn),
		MonitorName: optString(p.MonitorName),
	}
}

// UpdateAnomalyMonitor renames an existing cost anomaly monitor.
func UpdateAnomalyMonitor(p UpdateAnomalyMonitorParams) Operation {
	return Operation{
		Name:          "UpdateAnomalyMonitor",
		Mutating:      true,
		Target:        p.MonitorArn,
		DefaultSelect: "MonitorArn",
		Params:        p,
		Required:      unset(param{"MonitorArn", p.MonitorArn != ""}),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.UpdateAnomalyMonitor(ctx, p.Input())
		},
	}
}

// ---------------------------------------------------------------------------
// DeleteAnomalyMonitor
// ---------------------------------------------------------------------------

// DeleteAnomalyMonitorParams are the inputs of delete-anomaly-monitor.
type DeleteAnomalyMonitorParams struct {
	MonitorArn string
}

// Input builds the SDK request for p.
func (p DeleteAnomalyMonitorParams) Input() *ce.DeleteAnomalyMonitorInput {
	return &ce.DeleteAnomalyMonitorInput{MonitorArn: optString(p.MonitorArn)}
}

// DeleteAnomalyMonitor deletes a cost anomaly monitor. MonitorArn is
// mandatory: an empty value never reaches the service.
func DeleteAnomalyMonitor(p DeleteAnomalyMonitorParams) Operation {
	return Operation{
		Name:          "DeleteAnomalyMonitor",
		Mutating:      true,
		Target:        p.MonitorArn,
		DefaultSelect: SelectAll,
		Params:        p,
		Mandatory:     unset(param{"MonitorArn", p.MonitorArn != ""}),
		Send: func(ctx context.Context, c common.CostExplorerClient) (any, error) {
			return c.DeleteAnomalyMonitor(ctx, p.Input())
		},
	}
}
