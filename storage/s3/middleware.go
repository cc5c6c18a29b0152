package s3

import (
	"context"

	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// ServiceInstanceHeader carries the IBM COS service instance id.
const ServiceInstanceHeader = "ibm-service-instance-id"

// WithServiceInstance returns an API option that stamps every request with
// the service instance header.
func WithServiceInstance(instance string) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Build.Add(middleware.BuildMiddlewareFunc("ServiceInstanceHeader",
			func(ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler) (middleware.BuildOutput, middleware.Metadata, error) {
				if req, ok := in.Request.(*smithyhttp.Request); ok {
					req.Header.Set(ServiceInstanceHeader, instance)
				}
				return next.HandleBuild(ctx, in)
			}), middleware.After)
	}
}
