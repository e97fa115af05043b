package router

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"

	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/logging"
)

// HandleAPIGateway is the Lambda entry point for API Gateway proxy events.
// It never returns an error: failures are already folded into the response.
func (d *Dispatcher) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := d.logger.With("request_id", req.RequestContext.RequestID)
	ctx = logging.WithLogger(ctx, logger)

	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			logger.Errorw("invalid base64 request body", "path", req.Path, "method", req.HTTPMethod, "error", err)

			return toProxyResponse(articleresponse.InternalError()), nil
		}
		body = string(raw)
	}

	env := d.Dispatch(ctx, Event{
		Path:                  req.Path,
		HTTPMethod:            req.HTTPMethod,
		QueryStringParameters: req.QueryStringParameters,
		Body:                  body,
	})

	return toProxyResponse(env), nil
}

func toProxyResponse(env articleresponse.Envelope) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      env.StatusCode,
		Headers:         env.Headers,
		Body:            env.Body,
		IsBase64Encoded: env.IsBase64Encoded,
	}
}
