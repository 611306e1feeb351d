package invoke

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"

	"github.com/pankaj-dahiya-devops/costctl/internal/models"
)

// EndpointError wraps a name-resolution failure with the endpoint the
// request was sent to. Unwrap returns the original failure.
type EndpointError struct {
	Endpoint string
	Region   string
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf(
		"could not resolve Cost Explorer endpoint %s (region %s); check network connectivity, "+
			"the --region and --endpoint-url values, and that Cost Explorer is offered in this region: %v",
		e.Endpoint, e.Region, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// Translate converts a failed Send into an error record.
//
//   - cancellation and deadline errors become CANCELED
//   - a *net.DNSError anywhere in the chain becomes NETWORK, wrapped in an
//     *EndpointError
//   - a smithy.APIError becomes SERVICE with the service's code and fault
//   - any other net.Error becomes NETWORK; everything else CLIENT
func Translate(operation string, err error, endpoint Endpoint) *models.ErrorRecord {
	rec := &models.ErrorRecord{Operation: operation, Message: err.Error(), Err: err}

	var dnsErr *net.DNSError
	var apiErr smithy.APIError
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rec.Kind = models.ErrorKindCanceled
	case errors.As(err, &dnsErr):
		wrapped := &EndpointError{Endpoint: endpoint.URL, Region: endpoint.Region, Err: err}
		rec.Kind = models.ErrorKindNetwork
		rec.Message = wrapped.Error()
		rec.Err = wrapped
	case errors.As(err, &apiErr):
		rec.Kind = models.ErrorKindService
		rec.Code = apiErr.ErrorCode()
		rec.Message = apiErr.ErrorMessage()
		rec.Fault = apiErr.ErrorFault().String()
	case errors.As(err, &netErr):
		rec.Kind = models.ErrorKindNetwork
	default:
		rec.Kind = models.ErrorKindClient
	}
	return rec
}
