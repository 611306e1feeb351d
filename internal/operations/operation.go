// Package operations binds command parameters to Cost Explorer requests.
//
// Every remote operation is a params struct plus a constructor returning an
// Operation. The constructor copies the bound values into the SDK input
// without interpreting them; validation, confirmation, projection and error
// translation are applied uniformly by the invoke package.
package operations

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// SelectAll is the projection expression that returns the whole response.
const SelectAll = "*"

// Operation is one Cost Explorer call with its parameters already bound.
type Operation struct {
	// Name is the Cost Explorer API operation name, e.g. "UpdateAnomalyMonitor".
	Name string

	// Mutating marks operations that change service state. They are only
	// sent after confirmation or with force.
	Mutating bool

	// Target names the resource a mutating operation acts on. It is shown
	// in the confirmation prompt.
	Target string

	// DefaultSelect is the projection applied when the caller passes none.
	DefaultSelect string

	// Params is the bound params struct; "^Name" projections read from it.
	Params any

	// Required lists required parameters that were left empty. The call is
	// still sent; each entry produces a warning.
	Required []string

	// Mandatory lists strictly mandatory parameters that were left empty.
	// The call is not sent when this is non-empty.
	Mandatory []string

	// Send performs the remote call. It must not be invoked more than once
	// per Operation value.
	Send func(ctx context.Context, client common.CostExplorerClient) (any, error)
}

// param records whether a named parameter carries a value.
type param struct {
	name string
	set  bool
}

// unset returns the names of params that carry no value.
func unset(params ...param) []string {
	var names []string
	for _, p := range params {
		if !p.set {
			names = append(names, p.name)
		}
	}
	return names
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func optInt32(n int32) *int32 {
	if n == 0 {
		return nil
	}
	return aws.Int32(n)
}

// dateInterval returns nil when both ends are empty so an unbound time
// period is left out of the request instead of sent as {}.
func dateInterval(start, end string) *cetypes.DateInterval {
	if start == "" && end == "" {
		return nil
	}
	return &cetypes.DateInterval{Start: optString(start), End: optString(end)}
}

// userPaging reports whether the caller drives pagination explicitly, in
// which case a single page is returned.
func userPaging(noAutoIteration bool, token string) bool {
	return noAutoIteration || token != ""
}

// paginate calls fetch until the service stops returning a next-page token.
// fetch receives the token to request and returns the one the service sent
// back. A token equal to the one just requested ends the loop.
func paginate(ctx context.Context, first *string, fetch func(ctx context.Context, token *string) (*string, error)) error {
	token := first
	for {
		next, err := fetch(ctx, token)
		if err != nil {
			return err
		}
		if aws.ToString(next) == "" || aws.ToString(next) == aws.ToString(token) {
			return nil
		}
		token = next
	}
}
