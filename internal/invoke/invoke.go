// Package invoke runs a bound Cost Explorer operation end to end: parameter
// checks, confirmation, dispatch through the shared client, projection of
// the response and translation of failures into a single result record.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pankaj-dahiya-devops/costctl/internal/models"
	"github.com/pankaj-dahiya-devops/costctl/internal/operations"
	"github.com/pankaj-dahiya-devops/costctl/internal/providers/aws/common"
)

// ErrMissingParameter is wrapped by the error record of an invocation that
// left a mandatory parameter empty.
var ErrMissingParameter = errors.New("missing mandatory parameter")

// Endpoint describes where requests are sent; it feeds error diagnostics.
type Endpoint struct {
	URL    string
	Region string
}

// ClientProvider hands out the Cost Explorer client shared by every
// command. It is only consulted once a request is actually going to be sent.
type ClientProvider interface {
	CostExplorer(ctx context.Context) (common.CostExplorerClient, Endpoint, error)
}

// Options are the per-invocation switches common to every command.
type Options struct {
	// Select overrides the operation's default projection.
	Select string

	// Force skips the confirmation of mutating operations.
	Force bool
}

// Invoker executes operations. It holds no per-invocation state and may be
// reused.
type Invoker struct {
	clients ClientProvider
	confirm Confirmer
	log     logrus.FieldLogger
}

// NewInvoker returns an Invoker that obtains clients from clients and asks
// confirm before mutating operations.
func NewInvoker(clients ClientProvider, confirm Confirmer, log logrus.FieldLogger) *Invoker {
	return &Invoker{clients: clients, confirm: confirm, log: log}
}

// Run executes op and returns its result record. Run never returns a bare
// error: every failure is described by Result.Error.
//
// Flow:
//  1. Warn for each required parameter left empty; fail before sending if a
//     mandatory one is empty.
//  2. Validate the projection expression.
//  3. Ask for confirmation when op is mutating and opts.Force is false.
//     A declined confirmation returns Declined with nothing sent.
//  4. Send the request through the shared client.
//  5. Project the response.
func (inv *Invoker) Run(ctx context.Context, op operations.Operation, opts Options) models.Result {
	res := models.Result{Operation: op.Name}
	log := inv.log.WithField("operation", op.Name)

	for _, name := range op.Required {
		msg := fmt.Sprintf("parameter %s is marked as required but no value was supplied; the request is sent without it", name)
		log.Warn(msg)
		res.Warnings = append(res.Warnings, msg)
	}
	if len(op.Mandatory) > 0 {
		err := fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(op.Mandatory, ", "))
		res.Error = validationRecord(op.Name, err)
		return res
	}

	selectExpr := opts.Select
	if selectExpr == "" {
		selectExpr = op.DefaultSelect
	}
	if err := ValidateSelect(selectExpr); err != nil {
		res.Error = validationRecord(op.Name, err)
		return res
	}

	if op.Mutating && !opts.Force {
		ok, err := inv.confirm.Confirm(ctx, op.Name, op.Target)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.Error = &models.ErrorRecord{
				Kind:      models.ErrorKindCanceled,
				Operation: op.Name,
				Message:   "canceled at confirmation; no request sent",
				Err:       err,
			}
			return res
		}
		if err != nil {
			res.Error = &models.ErrorRecord{
				Kind:      models.ErrorKindClient,
				Operation: op.Name,
				Message:   fmt.Sprintf("read confirmation: %v", err),
				Err:       err,
			}
			return res
		}
		if !ok {
			log.Info("confirmation declined; no request sent")
			res.Declined = true
			return res
		}
	}

	client, endpoint, err := inv.clients.CostExplorer(ctx)
	if err != nil {
		res.Error = &models.ErrorRecord{
			Kind:      models.ErrorKindClient,
			Operation: op.Name,
			Message:   err.Error(),
			Err:       err,
		}
		return res
	}

	log.WithFields(logrus.Fields{
		"endpoint": endpoint.URL,
		"region":   endpoint.Region,
	}).Debug("sending request")

	out, err := op.Send(ctx, client)
	if err != nil {
		res.Error = Translate(op.Name, err, endpoint)
		return res
	}

	projected, err := Project(out, op.Params, selectExpr)
	if err != nil {
		res.Error = validationRecord(op.Name, err)
		return res
	}
	res.Output = projected
	return res
}

func validationRecord(operation string, err error) *models.ErrorRecord {
	return &models.ErrorRecord{
		Kind:      models.ErrorKindValidation,
		Operation: operation,
		Message:   err.Error(),
		Err:       err,
	}
}
