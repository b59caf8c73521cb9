package main

import (
	"context"

	"birthday-tracker-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

// containers outlives invocations so the warm connection is reused
var containers = server.NewContainerManager(nil)

var internalError = events.APIGatewayProxyResponse{
	StatusCode: 500,
	Headers:    map[string]string{"Content-Type": "application/json"},
	Body:       `{"error":"Internal server error"}`,
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := containers.GetContainer()
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return internalError, nil
	}

	return container.HandleAPIGateway(ctx, event), nil
}

func main() {
	awslambda.Start(handler)
}
